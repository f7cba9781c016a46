package lasso

import (
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/spatial"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

// Config holds the occlusion sampling thresholds. The defaults are
// starting points, not derived constants; callers tuning for a
// specific mesh scale should override them.
type Config struct {
	// MinVisibleSamples is the number of representative points that
	// must be unoccluded for a triangle to count as visible.
	MinVisibleSamples int
	// OcclusionEpsilon is the world-space slack when comparing the
	// nearest hit distance against the sample distance.
	OcclusionEpsilon float64
	// NormalCutoff is the maximum angle in radians between a face
	// normal and the direction toward the camera before the cheap
	// back-face pass rejects the triangle.
	NormalCutoff float64
}

// DefaultConfig returns the default occlusion thresholds
func DefaultConfig() Config {
	return Config{
		MinVisibleSamples: 2,
		OcclusionEpsilon:  1e-3,
		NormalCutoff:      105 * math.Pi / 180,
	}
}

// Visibility rejects triangles that merely project into the selection
// region while facing away from or being hidden from the camera.
type Visibility struct {
	view  *viewer.View
	index *spatial.Index
	cfg   Config
}

// NewVisibility creates a visibility filter over a view and the
// mesh's spatial index
func NewVisibility(view *viewer.View, index *spatial.Index, cfg Config) *Visibility {
	if cfg.MinVisibleSamples <= 0 {
		cfg = DefaultConfig()
	}
	return &Visibility{view: view, index: index, cfg: cfg}
}

// TriangleVisible reports whether a triangle is visible from the
// current camera. A cheap normal test runs first; survivors are
// sampled at the centroid and edge midpoints, each sample checked for
// occluders via the spatial index.
func (f *Visibility) TriangleVisible(triangle int) bool {
	tri := f.index.Mesh().Triangle(triangle)

	if !f.facesCamera(tri) {
		return false
	}

	visible := 0
	samples := tri.SamplePoints()
	for _, sample := range samples {
		if f.PointVisible(sample) {
			visible++
			if visible >= f.cfg.MinVisibleSamples {
				return true
			}
		}
	}
	return false
}

// facesCamera is the cheap first pass: reject when the face normal
// deviates from the direction toward the camera beyond the cutoff
func (f *Visibility) facesCamera(tri geometry.Triangle) bool {
	toCamera := f.view.Camera.Position.Sub(tri.Center()).Normalize()
	cosAngle := tri.Normal().Dot(toCamera)
	return cosAngle > math.Cos(f.cfg.NormalCutoff)
}

// PointVisible reports whether a world point is unoccluded: the
// nearest hit along the camera ray is absent or within epsilon of the
// point itself
func (f *Visibility) PointVisible(point geometry.Vector3) bool {
	ray := f.view.RayToward(point)
	hit, ok := f.index.NearestHit(ray)
	if !ok {
		return true
	}
	sampleDist := point.Distance(f.view.Camera.Position)
	return hit.Distance >= sampleDist-f.cfg.OcclusionEpsilon
}
