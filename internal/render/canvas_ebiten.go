//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// CanvasImage uploads a Canvas to the GPU and draws it at logical size.
type CanvasImage struct {
	img *ebiten.Image
}

// Draw uploads c and draws it over screen.
func (ci *CanvasImage) Draw(screen *ebiten.Image, c *Canvas) {
	w, h := c.Size()
	if w == 0 || h == 0 {
		return
	}
	if ci.img == nil || ci.img.Bounds().Dx() != w || ci.img.Bounds().Dy() != h {
		ci.img = ebiten.NewImage(w, h)
	}
	ci.img.WritePixels(c.Pix())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/c.Ratio(), 1/c.Ratio())
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(ci.img, op)
}
