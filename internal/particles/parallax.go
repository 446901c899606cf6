package particles

import "github.com/charmbracelet/harmonica"

// ParallaxStrength scales pointer position (normalized to [-1, 1]) into a
// rotation offset in radians.
const ParallaxStrength = 0.1

// Parallax eases the field towards a pointer-driven tilt. The tilt is added
// on top of the accumulated rotation at draw time and never folded into it.
type Parallax struct {
	spring harmonica.Spring
	x, vx  float64
	y, vy  float64
	tx, ty float64
}

// NewParallax builds a critically damped spring stepped fps times a second.
func NewParallax(fps int) *Parallax {
	if fps <= 0 {
		fps = 60
	}
	return &Parallax{spring: harmonica.NewSpring(harmonica.FPS(fps), 2.0, 1.0)}
}

// Point sets the target from a pointer position in logical pixels.
func (p *Parallax) Point(px, py float64, width, height int) {
	if p == nil || width <= 0 || height <= 0 {
		return
	}
	nx := px/float64(width)*2 - 1
	ny := -(py/float64(height))*2 + 1
	p.tx = ny * ParallaxStrength
	p.ty = nx * ParallaxStrength
}

// Step advances the spring one frame.
func (p *Parallax) Step() {
	if p == nil {
		return
	}
	p.x, p.vx = p.spring.Update(p.x, p.vx, p.tx)
	p.y, p.vy = p.spring.Update(p.y, p.vy, p.ty)
}

// Offset returns the current tilt about the X and Y axes.
func (p *Parallax) Offset() (x, y float64) {
	if p == nil {
		return 0, 0
	}
	return p.x, p.y
}
