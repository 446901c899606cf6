//go:build ebiten

package ui

import (
	"image/color"

	"scroll-scene/internal/core"
	"scroll-scene/internal/i18n"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/overlay"
	"scroll-scene/internal/page"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Painter draws the page and gallery views.
type Painter struct {
	pixel *ebiten.Image
}

// NewPainter allocates the shared drawing resources.
func NewPainter() *Painter {
	p := &Painter{pixel: ebiten.NewImage(1, 1)}
	p.pixel.Fill(color.White)
	return p
}

// DrawBackground fills screen with the live background colour.
func (p *Painter) DrawBackground(screen *ebiten.Image, style page.Style) {
	screen.Fill(style.Background.RGBA(1))
}

// DrawPage paints the sections, the carousel and the fixed chrome.
func (p *Painter) DrawPage(screen *ebiten.Image, doc *page.Document, l *layout.Page, scrollY float64, tr *i18n.Translator) {
	if doc == nil || l == nil {
		return
	}
	style := doc.Style
	vh := float64(l.Viewport.H)
	for i, sb := range l.Sections {
		if i >= len(doc.Sections) {
			break
		}
		top := sb.Box.Y - scrollY
		if top > vh || top+sb.Box.H < 0 {
			continue
		}
		p.drawSection(screen, &doc.Sections[i], sb, scrollY, style, tr)
	}
	if doc.Carousel != nil && l.Carousel != nil {
		p.drawCarousel(screen, doc.Carousel, l.Carousel, scrollY, style, tr)
	}
	p.drawChrome(screen, doc, l, tr)
}

func (p *Painter) drawSection(screen *ebiten.Image, s *page.Section, sb layout.SectionBox, scrollY float64, style page.Style, tr *i18n.Translator) {
	c := sb.Content.Offset(0, -scrollY)
	fg := style.Primary.RGBA(1)
	text.Draw(screen, tr.T(s.Heading), Face, int(c.X), int(c.Y), fg)
	muted := style.Secondary.RGBA(0.9)
	for j, line := range Wrap(tr.T(s.Body), Face, int(c.W)) {
		text.Draw(screen, line, Face, int(c.X), int(c.Y)+LineHeight*(j+2), muted)
	}

	if s.HasProgress {
		r := sb.Progress.Offset(0, -scrollY)
		p.fillRect(screen, r, style.Secondary.RGBA(0.25))
		fill := r
		fill.W = r.W * core.Clamp01(s.ProgressFill/100)
		p.fillRect(screen, fill, style.Primary.RGBA(1))
	}

	for j, it := range s.Items {
		if j >= len(sb.Items) || it.Opacity <= 0 {
			continue
		}
		r := sb.Items[j].Offset(it.OffsetX, it.OffsetY-scrollY)
		switch it.Kind {
		case page.ItemTimelineNode:
			vector.DrawFilledCircle(screen, float32(r.X+8), float32(r.Y+r.H/2), 6, style.Primary.RGBA(it.Opacity), true)
			text.Draw(screen, tr.T(it.Label), Face, int(r.X+24), int(r.Y+r.H/2+4), style.Secondary.RGBA(it.Opacity))
		default:
			p.fillRect(screen, r, style.Background.Lerp(style.Secondary, 0.15).RGBA(it.Opacity))
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, style.Primary.RGBA(it.Opacity), false)
			for k, line := range Wrap(tr.T(it.Label), Face, int(r.W-16)) {
				text.Draw(screen, line, Face, int(r.X+8), int(r.Y+20)+LineHeight*k, style.Secondary.RGBA(it.Opacity))
			}
		}
	}
}

func (p *Painter) drawCarousel(screen *ebiten.Image, m *page.Carousel, cb *layout.CarouselBox, scrollY float64, style page.Style, tr *i18n.Translator) {
	r := cb.Node.Offset(0, -scrollY)
	for _, n := range m.Nodes {
		if !n.Visible {
			continue
		}
		p.fillRect(screen, r, style.Background.Lerp(style.Primary, 0.1).RGBA(n.Opacity))
		text.Draw(screen, tr.T(n.Title), Face, int(r.X+16), int(r.Y+28), style.Primary.RGBA(n.Opacity))
		for k, line := range Wrap(tr.T(n.Body), Face, int(r.W-32)) {
			text.Draw(screen, line, Face, int(r.X+16), int(r.Y+28)+LineHeight*(k+2), style.Secondary.RGBA(n.Opacity))
		}
	}
	p.drawButton(screen, cb.Prev.Offset(0, -scrollY), tr.T("carousel.prev"), !m.PrevDisabled)
	p.drawButton(screen, cb.Next.Offset(0, -scrollY), tr.T("carousel.next"), !m.NextDisabled)
	for i, d := range cb.Dots {
		if i >= len(m.Dots) {
			break
		}
		d = d.Offset(0, -scrollY)
		cx, cy, rad := float32(d.X+d.W/2), float32(d.Y+d.H/2), float32(d.W/2)
		if m.Dots[i].Active {
			vector.DrawFilledCircle(screen, cx, cy, rad, style.Primary.RGBA(1), true)
			continue
		}
		vector.StrokeCircle(screen, cx, cy, rad-1, 1.5, style.Secondary.RGBA(0.6), true)
	}
}

func (p *Painter) drawChrome(screen *ebiten.Image, doc *page.Document, l *layout.Page, tr *i18n.Translator) {
	bar := layout.Rect{W: float64(l.Viewport.W), H: layout.NavHeight}
	p.fillRect(screen, bar, color.RGBA{R: 8, G: 8, B: 14, A: 200})
	text.Draw(screen, tr.T(doc.Title), Face, 16, 30, doc.Style.Primary.RGBA(1))
	for i, r := range l.Nav {
		if i >= len(doc.Nav) {
			break
		}
		link := doc.Nav[i]
		if link.Hovered {
			// Glow centred on the pointer.
			vector.DrawFilledCircle(screen, float32(r.X+link.HoverX), float32(r.Y+link.HoverY), float32(r.H), doc.Style.Primary.RGBA(0.18), true)
		}
		p.drawButton(screen, r, tr.T(link.Label), true)
	}
	p.drawButton(screen, l.Swap, tr.T(doc.SwapLabel), true)
}

// DrawGallery paints the overlay view.
func (p *Painter) DrawGallery(screen *ebiten.Image, g *overlay.Gallery, l *layout.Gallery, tr *i18n.Translator) {
	if g == nil || l == nil {
		return
	}
	screen.Fill(color.RGBA{R: 12, G: 10, B: 24, A: 255})
	accent := color.RGBA{R: 180, G: 140, B: 255, A: 255}
	text.Draw(screen, tr.T(g.Title), Face, int(l.Header.X+24), int(l.Header.Y+40), accent)
	text.Draw(screen, tr.T(g.Subtitle), Face, int(l.Header.X+24), int(l.Header.Y+40+LineHeight*2), color.RGBA{R: 200, G: 200, B: 220, A: 255})

	for i, r := range l.Cards {
		if i >= len(g.Cards) {
			break
		}
		card := g.Cards[i]
		p.fillRect(screen, r, color.RGBA{R: 28, G: 24, B: 48, A: 255})
		if card.Expanded {
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, accent, false)
		}
		text.Draw(screen, tr.T(card.Title), Face, int(r.X+12), int(r.Y+24), color.White)
		for k, line := range Wrap(tr.T(card.Short), Face, int(r.W-24)) {
			text.Draw(screen, line, Face, int(r.X+12), int(r.Y+24)+LineHeight*(k+2), color.RGBA{R: 190, G: 190, B: 210, A: 255})
		}
		if card.ShowDetails() {
			p.fillRect(screen, r, color.RGBA{R: 0, G: 0, B: 0, A: 190})
			for k, line := range Wrap(tr.T(card.Long), Face, int(r.W-24)) {
				text.Draw(screen, line, Face, int(r.X+12), int(r.Y+24)+LineHeight*k, color.White)
			}
		}
	}

	text.Draw(screen, tr.T(g.Footer), Face, int(l.Footer.X+l.Back.W+48), int(l.Footer.Y+l.Footer.H/2+4), color.RGBA{R: 140, G: 140, B: 160, A: 255})
	p.drawButton(screen, l.Back, tr.T(g.Back), true)
}

func (p *Painter) fillRect(screen *ebiten.Image, r layout.Rect, col color.RGBA) {
	if col.A == 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W, r.H)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(p.pixel, op)
}

func (p *Painter) drawButton(screen *ebiten.Image, r layout.Rect, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	p.fillRect(screen, r, bg)

	bounds := text.BoundString(Face, label)
	x := int(r.X) + (int(r.W)-TextWidth(label, Face))/2
	y := int(r.Y) + (int(r.H)-bounds.Dy())/2 + bounds.Dy()
	text.Draw(screen, label, Face, x, y, fg)
}
