// Package particles owns the background point cloud.
package particles

import (
	"math"

	"scroll-scene/internal/core"
)

const (
	// DefaultCount is the particle count used when none is configured.
	DefaultCount = 1000
	// CubeSide is the edge length of the cube particles are scattered in.
	CubeSide = 10.0

	// RotationStepX and RotationStepY are added once per frame, whatever
	// the frame time.
	RotationStepX = 0.0002
	RotationStepY = 0.0001

	// WobbleAmplitude scales the per-frame vertical drift.
	WobbleAmplitude = 0.001

	// PointSize is the world-space size of one particle and PointOpacity
	// its alpha.
	PointSize    = 0.05
	PointOpacity = 0.8
)

// Field is a fixed-size point cloud.
type Field struct {
	count     int
	positions []core.Vec3
	colors    []core.RGB
	ticks     uint64
	dirty     bool
}

// New scatters count particles uniformly in a cube centred on the origin
// and colours them along a gradient by index. A non-positive count falls
// back to DefaultCount.
func New(count int, rng *core.RNG) *Field {
	if count <= 0 {
		count = DefaultCount
	}
	if rng == nil {
		rng = core.NewRNG(1)
	}
	f := &Field{
		count:     count,
		positions: make([]core.Vec3, count),
		colors:    make([]core.RGB, count),
		dirty:     true,
	}
	for i := range f.positions {
		f.positions[i] = core.Vec3{
			X: rng.Centered(CubeSide),
			Y: rng.Centered(CubeSide),
			Z: rng.Centered(CubeSide),
		}
		f.colors[i] = GradientColor(i, count)
	}
	return f
}

// GradientColor is the colour of particle index out of count.
func GradientColor(index, count int) core.RGB {
	ratio := 0.0
	if count > 0 {
		ratio = float64(index) / float64(count)
	}
	return core.RGB{
		R: 0.10 + 0.15*ratio,
		G: 0.16 + 0.70*ratio,
		B: 0.50 + 0.30*ratio,
	}
}

// Advance runs one frame. now is wall-clock seconds; the wobble phase
// follows it directly, so motion speed tracks the refresh rate.
func (f *Field) Advance(now float64) {
	if f == nil {
		return
	}
	f.ticks++
	for i := range f.positions {
		p := &f.positions[i]
		p.Y += math.Sin(now+p.X) * WobbleAmplitude
	}
	f.dirty = true
}

// Rotation returns the accumulated (x, y) rotation, each wrapped to
// [0, 2π).
func (f *Field) Rotation() (x, y float64) {
	if f == nil {
		return 0, 0
	}
	n := float64(f.ticks)
	return math.Mod(n*RotationStepX, 2*math.Pi), math.Mod(n*RotationStepY, 2*math.Pi)
}

// Count returns the particle count.
func (f *Field) Count() int {
	if f == nil {
		return 0
	}
	return f.count
}

// Positions exposes the position buffer. Callers must not resize it.
func (f *Field) Positions() []core.Vec3 {
	if f == nil {
		return nil
	}
	return f.positions
}

// Colors exposes the colour buffer.
func (f *Field) Colors() []core.RGB {
	if f == nil {
		return nil
	}
	return f.colors
}

// NeedsUpload reports whether positions changed since the last upload.
func (f *Field) NeedsUpload() bool { return f != nil && f.dirty }

// MarkUploaded clears the dirty flag after the renderer consumed the buffer.
func (f *Field) MarkUploaded() {
	if f != nil {
		f.dirty = false
	}
}

// Rotate applies the rotation (x about the X axis, then y about the Y axis)
// to p.
func Rotate(p core.Vec3, x, y float64) core.Vec3 {
	sx, cx := math.Sincos(x)
	sy, cy := math.Sincos(y)
	// About X.
	p = core.Vec3{X: p.X, Y: p.Y*cx - p.Z*sx, Z: p.Y*sx + p.Z*cx}
	// About Y.
	return core.Vec3{X: p.X*cy + p.Z*sy, Y: p.Y, Z: -p.X*sy + p.Z*cy}
}
