package engine

import (
	"time"

	"github.com/philipparndt/gomesh/pkg/stl"
	"github.com/philipparndt/gomesh/pkg/watcher"
)

// watchDebounce absorbs the bursts of write events editors and
// slicers produce while saving
const watchDebounce = 300 * time.Millisecond

// Watch re-activates and rebuilds a context whenever its STL source
// file changes on disk. The returned watcher should be closed when
// the context is disposed.
func (e *Engine) Watch(contextID, file string, onRebuilt func(error)) (*watcher.SourceWatcher, error) {
	sw, err := watcher.NewSourceWatcher(watchDebounce, logger())
	if err != nil {
		return nil, err
	}

	reload := func(path string) {
		logger().Info("mesh source changed, rebuilding", "context", contextID, "file", path)

		model, err := stl.Parse(path)
		if err != nil {
			logger().Warn("reload failed", "file", path, "error", err)
			if onRebuilt != nil {
				onRebuilt(err)
			}
			return
		}
		m, err := model.ToMesh(path)
		if err != nil {
			if onRebuilt != nil {
				onRebuilt(err)
			}
			return
		}

		// Re-activation bumps the generation, so results from the
		// superseded build are dropped on arrival
		e.Activate(contextID, m)
		if err := e.BuildGraph(contextID, nil, onRebuilt); err != nil && onRebuilt != nil {
			onRebuilt(err)
		}
	}

	if err := sw.Watch(file, reload); err != nil {
		sw.Close()
		return nil, err
	}
	return sw, nil
}
