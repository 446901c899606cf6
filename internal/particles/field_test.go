package particles

import (
	"math"
	"testing"

	"scroll-scene/internal/core"
)

func TestBuffersMatchCount(t *testing.T) {
	for _, n := range []int{1, 2, 7, 1000, 4096} {
		f := New(n, core.NewRNG(int64(n)))
		if len(f.Positions()) != n || len(f.Colors()) != n || f.Count() != n {
			t.Fatalf("n=%d: positions=%d colors=%d", n, len(f.Positions()), len(f.Colors()))
		}
		for i, c := range f.Colors() {
			for _, ch := range []float64{c.R, c.G, c.B} {
				if ch < 0 || ch > 1 {
					t.Fatalf("n=%d: colour %d out of range: %+v", n, i, c)
				}
			}
		}
	}
}

func TestDefaultCount(t *testing.T) {
	if got := New(0, nil).Count(); got != DefaultCount {
		t.Fatalf("count = %d", got)
	}
}

func TestPositionsInsideCube(t *testing.T) {
	f := New(2000, core.NewRNG(42))
	half := CubeSide / 2
	for i, p := range f.Positions() {
		if math.Abs(p.X) > half || math.Abs(p.Y) > half || math.Abs(p.Z) > half {
			t.Fatalf("particle %d outside cube: %+v", i, p)
		}
	}
}

func TestGradientEndpoints(t *testing.T) {
	first := GradientColor(0, 1000)
	if first != (core.RGB{R: 0.10, G: 0.16, B: 0.50}) {
		t.Fatalf("first = %+v", first)
	}
	last := GradientColor(999, 1000)
	ratio := 0.999
	want := core.RGB{R: 0.10 + 0.15*ratio, G: 0.16 + 0.70*ratio, B: 0.50 + 0.30*ratio}
	if math.Abs(last.R-want.R) > 1e-12 || math.Abs(last.G-want.G) > 1e-12 || math.Abs(last.B-want.B) > 1e-12 {
		t.Fatalf("last = %+v, want %+v", last, want)
	}
}

func TestRotationIsPureAccumulation(t *testing.T) {
	f := New(10, core.NewRNG(1))
	const k = 12345
	for i := 0; i < k; i++ {
		// Wall-clock input must not influence rotation.
		f.Advance(float64(i) * 37.5)
	}
	x, y := f.Rotation()
	n := float64(k)
	if x != math.Mod(n*RotationStepX, 2*math.Pi) || y != math.Mod(n*RotationStepY, 2*math.Pi) {
		t.Fatalf("rotation = (%v, %v)", x, y)
	}

	g := New(10, core.NewRNG(1))
	for i := 0; i < k; i++ {
		g.Advance(0)
	}
	gx, gy := g.Rotation()
	if gx != x || gy != y {
		t.Fatal("rotation depends on the time argument")
	}
}

func TestRotationWraps(t *testing.T) {
	f := New(1, nil)
	f.ticks = uint64(math.Ceil(2 * math.Pi / RotationStepX))
	x, _ := f.Rotation()
	if x < 0 || x >= 2*math.Pi {
		t.Fatalf("x = %v", x)
	}
}

func TestAdvanceWobblesOnlyY(t *testing.T) {
	f := New(50, core.NewRNG(7))
	before := append([]core.Vec3(nil), f.Positions()...)
	now := 1.7e9
	f.Advance(now)
	for i, p := range f.Positions() {
		b := before[i]
		if p.X != b.X || p.Z != b.Z {
			t.Fatalf("particle %d moved off the vertical axis", i)
		}
		want := b.Y + math.Sin(now+b.X)*WobbleAmplitude
		if math.Abs(p.Y-want) > 1e-12 {
			t.Fatalf("particle %d y = %v, want %v", i, p.Y, want)
		}
	}
}

func TestAdvanceMarksDirty(t *testing.T) {
	f := New(3, nil)
	f.MarkUploaded()
	if f.NeedsUpload() {
		t.Fatal("upload flag not cleared")
	}
	f.Advance(1)
	if !f.NeedsUpload() {
		t.Fatal("advance must mark the buffer dirty")
	}
}

func TestRotateIdentity(t *testing.T) {
	p := core.Vec3{X: 1, Y: 2, Z: 3}
	if got := Rotate(p, 0, 0); got != p {
		t.Fatalf("rotate by zero = %+v", got)
	}
	q := Rotate(core.Vec3{X: 1}, 0, math.Pi/2)
	if math.Abs(q.X) > 1e-12 || math.Abs(q.Z+1) > 1e-12 {
		t.Fatalf("quarter turn about Y = %+v", q)
	}
}

func TestParallaxSettlesOnTarget(t *testing.T) {
	p := NewParallax(60)
	p.Point(800, 0, 800, 600) // right edge, top edge
	tx, ty := p.tx, p.ty
	if math.Abs(tx-ParallaxStrength) > 1e-12 || math.Abs(ty-ParallaxStrength) > 1e-12 {
		t.Fatalf("target = (%v, %v)", tx, ty)
	}
	for i := 0; i < 600; i++ {
		p.Step()
	}
	x, y := p.Offset()
	if math.Abs(x-tx) > 1e-3 || math.Abs(y-ty) > 1e-3 {
		t.Fatalf("offset = (%v, %v), target (%v, %v)", x, y, tx, ty)
	}
}
