package engine

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/lasso"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

func newDrawingSession(t *testing.T, e *Engine) *Session {
	t.Helper()
	m := squareMesh(t)
	e.Activate("surface", m)

	view := viewer.NewView(viewer.NewCamera(m.Bounds()), 800, 600)
	session, err := e.BeginSession("surface", view)
	if err != nil {
		t.Fatalf("BeginSession failed: %v", err)
	}
	return session
}

// enclosingStroke surrounds the whole projected square
func enclosingStroke() []geometry.Vector2 {
	return []geometry.Vector2{
		geometry.NewVector2(0.05, 0.05),
		geometry.NewVector2(0.95, 0.05),
		geometry.NewVector2(0.95, 0.95),
		geometry.NewVector2(0.05, 0.95),
	}
}

func TestSessionLifecycle(t *testing.T) {
	e := New(Options{})
	session := newDrawingSession(t, e)

	if session.State() != StateDrawing {
		t.Fatalf("new session should be drawing, got %v", session.State())
	}

	added, err := session.Stroke(enclosingStroke(), lasso.ModeCentroid, false)
	if err != nil {
		t.Fatalf("Stroke failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("enclosing stroke should select both triangles, got %v", added)
	}

	updates := make(chan SelectionUpdate, 2)
	if err := session.Complete(func(u SelectionUpdate) { updates <- u }); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	first := <-updates
	if first.IsFinal {
		t.Error("first update should announce the selection with the area pending")
	}
	if len(first.TriangleIndices) != 2 {
		t.Errorf("first update should carry the selection, got %v", first.TriangleIndices)
	}

	var final SelectionUpdate
	select {
	case final = <-updates:
	case <-time.After(5 * time.Second):
		t.Fatal("final update never arrived")
	}
	if !final.IsFinal {
		t.Fatal("second update should be final")
	}
	if math.Abs(final.Area-1.0) > 1e-10 {
		t.Errorf("final area should be 1.0, got %v", final.Area)
	}
	if session.State() != StateAwaitingConfirmation {
		t.Errorf("session should await confirmation, got %v", session.State())
	}

	saved, err := session.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("Save should return the selection, got %v", saved)
	}
	if session.State() != StateIdle {
		t.Errorf("saved session should rest in idle, got %v", session.State())
	}
}

func TestSessionDegenerateStroke(t *testing.T) {
	e := New(Options{})
	session := newDrawingSession(t, e)

	short := []geometry.Vector2{
		geometry.NewVector2(0.4, 0.4),
		geometry.NewVector2(0.6, 0.6),
	}
	added, err := session.Stroke(short, lasso.ModeCentroid, false)
	if err != nil {
		t.Fatalf("degenerate stroke should not error, got %v", err)
	}
	if added != nil {
		t.Errorf("degenerate stroke should select nothing, got %v", added)
	}
	if session.State() != StateDrawing {
		t.Errorf("session should keep drawing, got %v", session.State())
	}
}

func TestSessionAccumulatesAcrossStrokes(t *testing.T) {
	e := New(Options{})
	session := newDrawingSession(t, e)

	session.Stroke(enclosingStroke(), lasso.ModeCentroid, false)
	added, err := session.Stroke(enclosingStroke(), lasso.ModeCentroid, false)
	if err != nil {
		t.Fatalf("Stroke failed: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("second identical stroke should add nothing, got %v", added)
	}
	if got := session.Selection(); len(got) != 2 {
		t.Errorf("selection should hold both triangles, got %v", got)
	}
}

func TestSessionExclusive(t *testing.T) {
	e := New(Options{})
	session := newDrawingSession(t, e)

	view := viewer.NewView(viewer.NewCamera(squareMesh(t).Bounds()), 800, 600)
	if _, err := e.BeginSession("surface", view); !errors.Is(err, ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}

	session.Cancel()
	if _, err := e.BeginSession("surface", view); err != nil {
		t.Errorf("session should be available after cancel, got %v", err)
	}
}

func TestSessionExclusiveConcurrent(t *testing.T) {
	e := New(Options{})
	m := squareMesh(t)
	e.Activate("surface", m)
	view := viewer.NewView(viewer.NewCamera(m.Bounds()), 800, 600)

	// Racing begin attempts from a barrier: exactly one may end up
	// drawing, the rest must be turned away
	const attempts = 8
	start := make(chan struct{})
	var wg sync.WaitGroup
	var began atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.BeginSession("surface", view)
			if err == nil {
				began.Add(1)
				return
			}
			if !errors.Is(err, ErrSessionActive) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := began.Load(); got != 1 {
		t.Errorf("%d sessions began, want exactly 1", got)
	}
}

func TestSessionCancel(t *testing.T) {
	e := New(Options{})
	session := newDrawingSession(t, e)

	session.Stroke(enclosingStroke(), lasso.ModeCentroid, false)
	session.Cancel()

	if session.State() != StateIdle {
		t.Errorf("cancelled session should rest in idle, got %v", session.State())
	}
	if got := session.Selection(); len(got) != 0 {
		t.Errorf("cancel should discard the selection, got %v", got)
	}
	if _, err := session.Save(); !errors.Is(err, ErrSessionActive) {
		t.Errorf("save after cancel should fail, got %v", err)
	}
	if _, err := session.Stroke(enclosingStroke(), lasso.ModeCentroid, false); !errors.Is(err, ErrSessionActive) {
		t.Errorf("stroke after cancel should fail, got %v", err)
	}
}

func TestSessionSaveRequiresCompletion(t *testing.T) {
	e := New(Options{})
	session := newDrawingSession(t, e)

	session.Stroke(enclosingStroke(), lasso.ModeCentroid, false)
	if _, err := session.Save(); !errors.Is(err, ErrSessionActive) {
		t.Errorf("save while drawing should fail, got %v", err)
	}
}

func TestSessionUnknownContext(t *testing.T) {
	e := New(Options{})

	view := viewer.NewView(viewer.NewCamera(squareMesh(t).Bounds()), 800, 600)
	if _, err := e.BeginSession("nope", view); !errors.Is(err, ErrUnknownContext) {
		t.Errorf("expected ErrUnknownContext, got %v", err)
	}
}
