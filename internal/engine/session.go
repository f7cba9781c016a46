package engine

import (
	"sync"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/lasso"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

// SessionState tracks a selection session through its lifecycle:
// Idle -> Drawing -> Computing -> AwaitingConfirmation ->
// {Saved | Cancelled} -> Idle. Saved and Cancelled are transient;
// the session rests in Idle.
type SessionState int

const (
	StateIdle SessionState = iota
	StateDrawing
	StateComputing
	StateAwaitingConfirmation
	StateSaved
	StateCancelled
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateComputing:
		return "computing"
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateSaved:
		return "saved"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// SelectionUpdate is delivered to the session's notify callback. A
// non-final update announces the selected triangles while the area is
// still pending; the final update carries the area.
type SelectionUpdate struct {
	TriangleIndices []int
	IsFinal         bool
	Area            float64
	TriangleCount   int
}

// Session is one lasso measurement interaction. The selection
// accumulates across strokes until the session is saved or cancelled.
type Session struct {
	mu        sync.Mutex
	engine    *Engine
	contextID string
	mesh      *mesh.Mesh
	view      *viewer.View
	selector  *lasso.Selector
	selection *lasso.Selection
	state     SessionState
	token     uint64 // bumped on cancel; stale area results are dropped
}

// BeginSession starts a selection session on a context. Exactly one
// session may be drawing or computing per engine at a time.
func (e *Engine) BeginSession(contextID string, view *viewer.View) (*Session, error) {
	ctx, ok := e.contextByID(contextID)
	if !ok {
		return nil, ErrUnknownContext
	}
	if ctx.mesh == nil {
		return nil, ErrDataUnavailable
	}

	// The spatial index build can be slow on first use, so it runs
	// before the slot check; the exclusivity decision and the slot
	// assignment share one critical section.
	index := e.indexFor(ctx)
	session := &Session{
		engine:    e,
		contextID: contextID,
		mesh:      ctx.mesh,
		view:      view,
		selector:  lasso.NewSelector(view, index, e.opts.Lasso),
		selection: lasso.NewSelection(),
		state:     StateDrawing,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		st := e.active.State()
		if st == StateDrawing || st == StateComputing {
			return nil, ErrSessionActive
		}
	}
	e.active = session
	return session, nil
}

// State returns the session state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selection returns the accumulated triangle indices
func (s *Session) Selection() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Indices()
}

// Stroke classifies one boundary stroke and returns the triangle
// indices it newly added. A boundary with fewer than three points
// selects nothing: degenerate input is ordinary interaction, not an
// error. With wholeModel set, any detected overlap selects every
// triangle.
func (s *Session) Stroke(points []geometry.Vector2, mode lasso.Mode, wholeModel bool) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDrawing {
		return nil, ErrSessionActive
	}

	boundary := lasso.NewBoundary(points)
	if !boundary.Valid() {
		return nil, nil
	}

	if wholeModel {
		return s.selector.SelectAll(boundary, mode, s.selection), nil
	}
	return s.selector.Select(boundary, mode, s.selection), nil
}

// Complete finishes drawing and starts the area computation. The
// notify callback first receives a non-final update (selection ready,
// area pending), then the final update once the area job lands.
// Results arriving after cancellation are discarded.
func (s *Session) Complete(notify func(SelectionUpdate)) error {
	s.mu.Lock()
	if s.state != StateDrawing {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.state = StateComputing
	indices := s.selection.Indices()
	token := s.token
	s.mu.Unlock()

	if notify != nil {
		notify(SelectionUpdate{TriangleIndices: indices, IsFinal: false})
	}

	go func() {
		result, err := s.engine.ComputeArea(s.mesh, indices)

		s.mu.Lock()
		if s.token != token || s.state != StateComputing {
			s.mu.Unlock()
			logger().Info("dropping stale area result", "context", s.contextID)
			return
		}
		if err != nil {
			// Both area paths failed; the session returns to
			// drawing so the user keeps the selection
			s.state = StateDrawing
			s.mu.Unlock()
			logger().Warn("area computation failed", "context", s.contextID, "error", err)
			return
		}
		s.state = StateAwaitingConfirmation
		s.mu.Unlock()

		if notify != nil {
			notify(SelectionUpdate{
				TriangleIndices: indices,
				IsFinal:         true,
				Area:            result.Area,
				TriangleCount:   result.TriangleCount,
			})
		}
	}()

	return nil
}

// Save confirms the session and returns the final selection. The
// session rests in Idle afterwards.
func (s *Session) Save() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingConfirmation {
		return nil, ErrSessionActive
	}
	s.state = StateSaved
	indices := s.selection.Indices()
	s.selection.Clear()
	s.state = StateIdle
	return indices, nil
}

// Cancel discards the session. Any in-flight area result is dropped
// on arrival.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.token++
	s.state = StateCancelled
	s.selection.Clear()
	s.state = StateIdle
	s.mu.Unlock()
}
