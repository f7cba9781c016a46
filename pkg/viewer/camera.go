// Package viewer holds the camera and projection state the selection
// engine consumes. It owns no render loop; it only maps points between
// world space and normalized screen space.
package viewer

import (
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// Camera represents a perspective camera looking at the model
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Field of view in radians
	Distance float64
}

// NewCamera creates a camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance == 0 {
		distance = 1
	}

	return &Camera{
		Position: center.Add(geometry.NewVector3(0, 0, distance)),
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: distance,
	}
}

// ViewDirection returns the unit vector from the camera toward its
// target
func (c *Camera) ViewDirection() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// basis returns the camera-space right, up and forward axes
func (c *Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.ViewDirection()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Project projects a 3D point to 2D screen coordinates, returning the
// screen position and the camera-space depth
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	right, up, forward := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Points at or behind the eye are clamped just in front of it
	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Unproject converts 2D screen coordinates to a world-space ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	right, up, forward := c.basis()
	direction := forward.
		Add(right.Mul(ndcX * fovScale * aspect)).
		Add(up.Mul(ndcY * fovScale))

	return geometry.NewRay(c.Position, direction)
}

// View couples a camera with a viewport and works in normalized screen
// coordinates (0..1 on both axes), the space selection boundaries are
// recorded in.
type View struct {
	Camera *Camera
	Width  float64
	Height float64
}

// NewView creates a view over a camera and viewport size
func NewView(camera *Camera, width, height float64) *View {
	return &View{Camera: camera, Width: width, Height: height}
}

// ProjectNormalized projects a world point into normalized screen
// space, returning the point and its camera-space depth
func (v *View) ProjectNormalized(point geometry.Vector3) (geometry.Vector2, float64) {
	x, y, depth := v.Camera.Project(point, v.Width, v.Height)
	return geometry.NewVector2(x/v.Width, y/v.Height), depth
}

// RayThrough returns the world-space ray through a normalized screen
// point
func (v *View) RayThrough(point geometry.Vector2) geometry.Ray {
	return v.Camera.Unproject(point.X*v.Width, point.Y*v.Height, v.Width, v.Height)
}

// RayToward returns the ray from the camera toward a world point
func (v *View) RayToward(point geometry.Vector3) geometry.Ray {
	return geometry.NewRay(v.Camera.Position, point.Sub(v.Camera.Position))
}
