// Package viewport keeps the camera projection and the render surface in
// step with the window size.
package viewport

import (
	"errors"
	"math"

	"scroll-scene/internal/core"
)

// MaxPixelRatio caps the device pixel ratio used for the render surface.
const MaxPixelRatio = 2

// ErrNoSurface is returned when there is nothing to render into.
var ErrNoSurface = errors.New("viewport: render surface missing")

// Surface is the drawable the scene renders into.
type Surface interface {
	// SetSize resizes the backing store to the logical size scaled by
	// pixelRatio.
	SetSize(width, height int, pixelRatio float64)
}

// State is the current viewport geometry.
type State struct {
	Width      int
	Height     int
	PixelRatio float64
}

// Size returns the logical size.
func (s State) Size() core.Size { return core.Size{W: s.Width, H: s.Height} }

// Camera is a perspective camera looking down -Z from (0, 0, Z).
type Camera struct {
	FOV    float64 // vertical field of view, degrees
	Near   float64
	Far    float64
	Z      float64
	Aspect float64

	focal float64
}

// DefaultCamera mirrors the scene's fixed camera.
func DefaultCamera() Camera {
	return Camera{FOV: 75, Near: 0.1, Far: 1000, Z: 5}
}

// Binding owns the viewport state and its derived camera.
type Binding struct {
	surface Surface
	state   State
	camera  Camera
}

// New binds a surface at the given size and device pixel ratio.
func New(surface Surface, width, height int, devicePixelRatio float64) (*Binding, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	b := &Binding{surface: surface, camera: DefaultCamera()}
	b.state.PixelRatio = clampRatio(devicePixelRatio)
	b.Resize(width, height)
	return b, nil
}

// Resize recomputes everything derived from the window size. It is cheap and
// idempotent, so it runs in full for every event.
func (b *Binding) Resize(width, height int) {
	if b == nil {
		return
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b.state.Width = width
	b.state.Height = height
	b.camera.Aspect = float64(width) / float64(height)
	b.camera.updateProjection()
	b.surface.SetSize(width, height, b.state.PixelRatio)
}

// SetPixelRatio changes the device pixel ratio and resizes the surface.
func (b *Binding) SetPixelRatio(ratio float64) {
	if b == nil {
		return
	}
	b.state.PixelRatio = clampRatio(ratio)
	b.Resize(b.state.Width, b.state.Height)
}

// State returns the current geometry.
func (b *Binding) State() State {
	if b == nil {
		return State{}
	}
	return b.state
}

// Camera returns the current camera.
func (b *Binding) Camera() Camera {
	if b == nil {
		return Camera{}
	}
	return b.camera
}

// Project maps a scene-space point to logical screen pixels. ok is false for
// points behind the near plane or beyond the far plane. depth is the
// distance in front of the camera.
func (b *Binding) Project(p core.Vec3) (x, y, depth float64, ok bool) {
	if b == nil {
		return 0, 0, 0, false
	}
	return b.camera.project(p, b.state.Width, b.state.Height)
}

func (c *Camera) updateProjection() {
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
}

func (c Camera) project(p core.Vec3, width, height int) (float64, float64, float64, bool) {
	depth := c.Z - p.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	ndcX := p.X * c.focal / (depth * c.Aspect)
	ndcY := p.Y * c.focal / depth
	x := (ndcX + 1) * 0.5 * float64(width)
	y := (1 - ndcY) * 0.5 * float64(height)
	return x, y, depth, true
}

// PointScale returns how many pixels a scene unit spans at depth.
func (b *Binding) PointScale(depth float64) float64 {
	if b == nil || depth <= 0 {
		return 0
	}
	return b.camera.focal * float64(b.state.Height) * 0.5 / depth
}

func clampRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 1
	}
	return math.Min(r, MaxPixelRatio)
}
