package engine

import "errors"

// Error taxonomy for the measurement engine. Unreachable is not an
// error: an unreachable path query returns a nil path.
var (
	// ErrDataUnavailable means the context has no source mesh or no
	// successfully built graph.
	ErrDataUnavailable = errors.New("source mesh data unavailable")

	// ErrBuildFailure means the background graph build faulted. The
	// previous graph is discarded and the ready flag cleared.
	ErrBuildFailure = errors.New("graph build failed")

	// ErrBuildInProgress rejects a build request while another build
	// for the same context is in flight.
	ErrBuildInProgress = errors.New("graph build already in progress")

	// ErrComputationFailure means the background area job faulted
	// and the synchronous fallback failed too.
	ErrComputationFailure = errors.New("area computation failed")

	// ErrSessionActive rejects starting a session while another one
	// is drawing or computing.
	ErrSessionActive = errors.New("another session is active")

	// ErrUnknownContext means the context id is not registered.
	ErrUnknownContext = errors.New("unknown context")
)
