// Package render rasterizes the particle field. The point splatting is
// plain Go over an RGBA buffer so it runs headless; the ebiten build uploads
// the buffer to the screen.
package render

import (
	"image/color"
	"math"

	"scroll-scene/internal/particles"
	"scroll-scene/internal/viewport"
)

// Canvas is the render surface the viewport binding sizes. Pixels are
// premultiplied RGBA at device resolution.
type Canvas struct {
	width  int
	height int
	ratio  float64
	pix    []byte
}

// NewCanvas returns an empty canvas. It gets a size from the first
// viewport resize.
func NewCanvas() *Canvas { return &Canvas{ratio: 1} }

// SetSize implements viewport.Surface.
func (c *Canvas) SetSize(width, height int, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	w := int(math.Ceil(float64(width) * pixelRatio))
	h := int(math.Ceil(float64(height) * pixelRatio))
	c.ratio = pixelRatio
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.pix = make([]byte, w*h*4)
}

// Size returns the device pixel size.
func (c *Canvas) Size() (w, h int) { return c.width, c.height }

// Ratio returns the device pixel ratio.
func (c *Canvas) Ratio() float64 { return c.ratio }

// Pix exposes the pixel buffer.
func (c *Canvas) Pix() []byte { return c.pix }

// Clear resets every pixel to transparent black.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// Splat draws a square point of size logical pixels centred on (x, y).
func (c *Canvas) Splat(x, y, size float64, col color.RGBA) {
	if size <= 0 || col.A == 0 {
		return
	}
	half := size * c.ratio * 0.5
	cx, cy := x*c.ratio, y*c.ratio
	x0 := max(0, int(math.Floor(cx-half)))
	y0 := max(0, int(math.Floor(cy-half)))
	x1 := min(c.width, int(math.Ceil(cx+half)))
	y1 := min(c.height, int(math.Ceil(cy+half)))
	for py := y0; py < y1; py++ {
		row := py * c.width * 4
		for px := x0; px < x1; px++ {
			blendRGBA(c.pix[row+px*4:row+px*4+4], col)
		}
	}
}

// blendRGBA composites the premultiplied src over dst.
func blendRGBA(dst []byte, src color.RGBA) {
	inv := 255 - uint32(src.A)
	dst[0] = uint8(uint32(src.R) + uint32(dst[0])*inv/255)
	dst[1] = uint8(uint32(src.G) + uint32(dst[1])*inv/255)
	dst[2] = uint8(uint32(src.B) + uint32(dst[2])*inv/255)
	dst[3] = uint8(uint32(src.A) + uint32(dst[3])*inv/255)
}

// PaintField clears c and splats every particle of f, rotated by the
// field's own rotation plus the extra tilt (tiltX, tiltY). It returns the
// number of points drawn and marks the field's buffers uploaded.
func PaintField(c *Canvas, f *particles.Field, vp *viewport.Binding, tiltX, tiltY float64) int {
	if c == nil || f == nil || vp == nil {
		return 0
	}
	c.Clear()
	rx, ry := f.Rotation()
	rx += tiltX
	ry += tiltY
	colors := f.Colors()
	drawn := 0
	for i, p := range f.Positions() {
		x, y, depth, ok := vp.Project(particles.Rotate(p, rx, ry))
		if !ok {
			continue
		}
		size := max(1, vp.PointScale(depth)*particles.PointSize)
		c.Splat(x, y, size, colors[i].RGBA(particles.PointOpacity))
		drawn++
	}
	f.MarkUploaded()
	return drawn
}
