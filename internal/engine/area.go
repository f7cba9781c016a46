package engine

import (
	"encoding/json"
	"fmt"

	"github.com/philipparndt/gomesh/pkg/analysis"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// areaPayload is the serialized result crossing back from the area
// worker
type areaPayload struct {
	Area          float64 `json:"area"`
	TriangleCount int     `json:"triangleCount"`
	Error         string  `json:"error,omitempty"`
}

// ComputeArea computes the total area of a triangle selection.
// Selections above the configured threshold run on a background
// goroutine; if that path faults the computation degrades silently to
// the synchronous fallback, which evaluates the identical per-triangle
// formula in the identical order. Only a failure of both surfaces
// ErrComputationFailure.
func (e *Engine) ComputeArea(m *mesh.Mesh, triangles []int) (analysis.AreaResult, error) {
	if len(triangles) <= e.opts.AreaThreshold {
		return e.computeAreaSync(m, triangles)
	}

	result, err := e.computeAreaBackground(m, triangles)
	if err != nil {
		logger().Warn("background area job failed, falling back", "error", err)
		return e.computeAreaSync(m, triangles)
	}
	return result, nil
}

// computeAreaSync is the synchronous reference path
func (e *Engine) computeAreaSync(m *mesh.Mesh, triangles []int) (analysis.AreaResult, error) {
	result, err := analysis.SelectionArea(m, triangles)
	if err != nil {
		return analysis.AreaResult{}, fmt.Errorf("%w: %v", ErrComputationFailure, err)
	}
	return result, nil
}

// computeAreaBackground runs the summation on a worker goroutine,
// passing only a serialized payload back across the boundary
func (e *Engine) computeAreaBackground(m *mesh.Mesh, triangles []int) (analysis.AreaResult, error) {
	resultCh := make(chan []byte, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				payload, _ := json.Marshal(areaPayload{Error: fmt.Sprint(r)})
				resultCh <- payload
			}
		}()

		result, err := analysis.SelectionArea(m, triangles)
		var payload areaPayload
		if err != nil {
			payload.Error = err.Error()
		} else {
			payload.Area = result.Area
			payload.TriangleCount = result.TriangleCount
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			encoded, _ = json.Marshal(areaPayload{Error: err.Error()})
		}
		resultCh <- encoded
	}()

	encoded := <-resultCh
	var payload areaPayload
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return analysis.AreaResult{}, fmt.Errorf("decode area result: %w", err)
	}
	if payload.Error != "" {
		return analysis.AreaResult{}, fmt.Errorf("area worker: %s", payload.Error)
	}
	return analysis.AreaResult{Area: payload.Area, TriangleCount: payload.TriangleCount}, nil
}
