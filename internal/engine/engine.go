// Package engine owns the measurement contexts: per-surface graph and
// spatial index pairs, background build jobs, selection sessions and
// the query API over them.
package engine

import (
	"sync"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/lasso"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/meshgraph"
	"github.com/philipparndt/gomesh/pkg/spatial"
)

// DefaultAreaThreshold is the selection size above which area
// computation moves off the calling goroutine.
const DefaultAreaThreshold = 64

// Options configures an Engine
type Options struct {
	// Lasso holds the occlusion sampling thresholds.
	Lasso lasso.Config
	// AreaThreshold is the triangle count above which area jobs run
	// in the background. Zero means DefaultAreaThreshold.
	AreaThreshold int
	// LeafSize is the spatial index leaf threshold. Zero means the
	// spatial package default.
	LeafSize int
}

// Engine tracks measurement contexts keyed by id. Each context owns
// one mesh, one graph and one spatial index; nothing is shared across
// contexts.
type Engine struct {
	mu       sync.Mutex
	contexts map[string]*meshContext
	cache    *spatial.Cache
	active   *Session
	opts     Options
}

// meshContext is one independently measured surface instance
type meshContext struct {
	id         string
	mesh       *mesh.Mesh
	graph      *meshgraph.Graph
	ready      bool
	readyCh    chan struct{}
	building   bool
	generation uint64
	sourceFile string
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.AreaThreshold <= 0 {
		opts.AreaThreshold = DefaultAreaThreshold
	}
	if opts.Lasso.MinVisibleSamples <= 0 {
		opts.Lasso = lasso.DefaultConfig()
	}
	return &Engine{
		contexts: make(map[string]*meshContext),
		cache:    spatial.NewCache(),
		opts:     opts,
	}
}

// Activate registers a context for a mesh, replacing any previous
// mesh for the same id. Replacing invalidates the context's graph and
// spatial index.
func (e *Engine) Activate(contextID string, m *mesh.Mesh) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prev, ok := e.contexts[contextID]; ok && prev.mesh != nil {
		e.cache.Invalidate(prev.mesh.ID)
	}
	e.contexts[contextID] = &meshContext{
		id:         contextID,
		mesh:       m,
		generation: e.nextGeneration(contextID),
		readyCh:    make(chan struct{}),
	}
}

// nextGeneration returns a generation strictly above any generation
// the context has used, so results from before a swap are stale
func (e *Engine) nextGeneration(contextID string) uint64 {
	if prev, ok := e.contexts[contextID]; ok {
		return prev.generation + 1
	}
	return 1
}

// Dispose tears down a context. Any in-flight background result for
// it is detected as stale on arrival and dropped.
func (e *Engine) Dispose(contextID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, ok := e.contexts[contextID]
	if !ok {
		return
	}
	if ctx.mesh != nil {
		e.cache.Invalidate(ctx.mesh.ID)
	}
	delete(e.contexts, contextID)
}

// Ready reports whether the context's graph is built and usable
func (e *Engine) Ready(contextID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, ok := e.contexts[contextID]
	return ok && ctx.ready
}

// ReadySignal returns a channel closed when the context's current
// build completes successfully. A nil channel is returned for unknown
// contexts.
func (e *Engine) ReadySignal(contextID string) <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, ok := e.contexts[contextID]
	if !ok {
		return nil
	}
	return ctx.readyCh
}

// FindPath returns the shortest surface path between two vertex
// indices of a context's graph, or nil when either index is out of
// range or the vertices are unconnected. Querying a context whose
// graph is not ready is an error.
func (e *Engine) FindPath(start, end int, contextID string) ([]geometry.Vector3, error) {
	e.mu.Lock()
	ctx, ok := e.contexts[contextID]
	if !ok {
		e.mu.Unlock()
		return nil, ErrUnknownContext
	}
	if !ctx.ready || ctx.graph == nil {
		e.mu.Unlock()
		return nil, ErrDataUnavailable
	}
	graph := ctx.graph
	e.mu.Unlock()

	return meshgraph.ShortestPath(graph, start, end), nil
}

// indexFor returns the context's spatial index, building it lazily on
// first use
func (e *Engine) indexFor(ctx *meshContext) *spatial.Index {
	m := ctx.mesh
	return e.cache.Get(m.ID, func() *spatial.Index {
		logger().Debug("building spatial index", "context", ctx.id, "triangles", m.TriangleCount())
		return spatial.Build(m, e.opts.LeafSize)
	})
}

// contextByID returns a registered context
func (e *Engine) contextByID(contextID string) (*meshContext, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, ok := e.contexts[contextID]
	return ctx, ok
}
