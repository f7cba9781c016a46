package engine

import (
	"encoding/json"
	"fmt"

	"github.com/philipparndt/gomesh/pkg/meshgraph"
)

// BuildProgress is a periodic build progress notification
type BuildProgress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// BuildGraph starts the background graph build for a context. It
// returns immediately; progress is reported via the progress callback
// and completion via done. Only one build may be in flight per
// context; concurrent re-requests are rejected. Starting a rebuild
// clears the ready flag; a failed build additionally discards the
// previous graph.
func (e *Engine) BuildGraph(contextID string, progress func(BuildProgress), done func(error)) error {
	e.mu.Lock()
	ctx, ok := e.contexts[contextID]
	if !ok {
		e.mu.Unlock()
		return ErrUnknownContext
	}
	if ctx.mesh == nil {
		ctx.ready = false
		e.mu.Unlock()
		return ErrDataUnavailable
	}
	if ctx.building {
		e.mu.Unlock()
		return ErrBuildInProgress
	}
	ctx.building = true
	ctx.generation++
	if ctx.ready {
		// Rebuilds get a fresh ready signal; queries wait for it
		ctx.ready = false
		ctx.readyCh = make(chan struct{})
	}
	generation := ctx.generation
	m := ctx.mesh
	e.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.failBuild(contextID, generation, done, fmt.Errorf("%w: %v", ErrBuildFailure, r))
			}
		}()

		graph := meshgraph.Build(m, func(stage string, percent, current, total int) {
			if progress != nil {
				progress(BuildProgress{Stage: stage, Percent: percent, Current: current, Total: total})
			}
		})

		// Only a serialized payload crosses back from the build
		// goroutine
		payload, err := json.Marshal(meshgraph.Encode(graph))
		if err != nil {
			e.failBuild(contextID, generation, done, fmt.Errorf("%w: encode: %v", ErrBuildFailure, err))
			return
		}
		e.applyBuild(contextID, generation, payload, done)
	}()

	return nil
}

// applyBuild installs a finished build result unless it is stale
func (e *Engine) applyBuild(contextID string, generation uint64, payload []byte, done func(error)) {
	var wire meshgraph.WireGraph
	if err := json.Unmarshal(payload, &wire); err != nil {
		e.failBuild(contextID, generation, done, fmt.Errorf("%w: decode: %v", ErrBuildFailure, err))
		return
	}
	graph, err := meshgraph.Decode(&wire)
	if err != nil {
		e.failBuild(contextID, generation, done, fmt.Errorf("%w: decode: %v", ErrBuildFailure, err))
		return
	}

	e.mu.Lock()
	ctx, ok := e.contexts[contextID]
	if !ok || ctx.generation != generation {
		e.mu.Unlock()
		logger().Info("dropping stale build result", "context", contextID, "generation", generation)
		return
	}
	ctx.graph = graph
	ctx.ready = true
	ctx.building = false
	close(ctx.readyCh)
	e.mu.Unlock()

	logger().Debug("graph build complete", "context", contextID,
		"vertices", graph.VertexCount(), "edges", graph.EdgeCount())
	if done != nil {
		done(nil)
	}
}

// failBuild clears the context's graph after a build fault, unless
// the result is already stale
func (e *Engine) failBuild(contextID string, generation uint64, done func(error), err error) {
	e.mu.Lock()
	ctx, ok := e.contexts[contextID]
	if ok && ctx.generation == generation {
		ctx.graph = nil
		ctx.ready = false
		ctx.building = false
	}
	e.mu.Unlock()

	logger().Warn("graph build failed", "context", contextID, "error", err)
	if done != nil {
		done(err)
	}
}
