// Package layout computes where page and gallery elements sit, for drawing
// and for pointer hit testing. Page boxes are in page coordinates (scroll
// independent); fixed chrome such as the nav bar is in screen coordinates.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"scroll-scene/internal/core"
	"scroll-scene/internal/observe"
	"scroll-scene/internal/page"
)

// Hit-test target ids.
const (
	TargetSwap = "swap.open"
	TargetPrev = "carousel.prev"
	TargetNext = "carousel.next"
	TargetBack = "overlay.back"

	prefixNav  = "nav."
	prefixDot  = "carousel.dot."
	prefixCard = "card."
)

// NavTarget names nav link i.
func NavTarget(i int) string { return prefixNav + strconv.Itoa(i) }

// DotTarget names carousel dot i.
func DotTarget(i int) string { return prefixDot + strconv.Itoa(i) }

// CardTarget names gallery card i.
func CardTarget(i int) string { return prefixCard + strconv.Itoa(i) }

// NavIndex parses a NavTarget.
func NavIndex(target string) (int, bool) { return index(target, prefixNav) }

// DotIndex parses a DotTarget.
func DotIndex(target string) (int, bool) { return index(target, prefixDot) }

// CardIndex parses a CardTarget.
func CardIndex(target string) (int, bool) { return index(target, prefixCard) }

func index(target, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(target, prefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r. Edges on the far side are
// exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Offset moves r by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.0f,%.0f %.0fx%.0f)", r.X, r.Y, r.W, r.H)
}

const (
	NavHeight     = 48
	navLinkWidth  = 96
	navLinkGap    = 4
	navPad        = 16
	buttonHeight  = 28
	swapX         = 200
	swapWidth     = 124
	progressH     = 8
	nodeHeight    = 56
	nodeGap       = 12
	cardHeight    = 90
	cardMinWidth  = 220
	cardGap       = 16
	controlWidth  = 72
	dotSize       = 12
	dotSpacing    = 22
	galleryPad    = 24
	galleryCardW  = 240
	galleryCardH  = 180
	galleryGap    = 20
	galleryHeader = 96
	galleryFooter = 64
)

// SectionBox is the geometry of one section.
type SectionBox struct {
	ID       string
	Box      Rect
	Content  Rect
	Progress Rect
	Items    []Rect
}

// CarouselBox is the geometry of the carousel.
type CarouselBox struct {
	Node Rect
	Prev Rect
	Next Rect
	Dots []Rect
}

// Page is the geometry of the normal-mode page at one viewport size.
type Page struct {
	Viewport core.Size
	Height   float64
	Sections []SectionBox
	Carousel *CarouselBox
	Nav      []Rect
	Swap     Rect
}

// Build lays the document out for the viewport.
func Build(doc *page.Document, vp core.Size) *Page {
	p := &Page{Viewport: vp}
	if doc == nil || vp.W <= 0 || vp.H <= 0 {
		return p
	}
	w := float64(vp.W)
	vh := float64(vp.H)
	margin := max(24, 0.1*w)
	contentW := max(1, w-2*margin)

	top := 0.0
	for _, s := range doc.Sections {
		h := s.HeightVH * vh
		sb := SectionBox{
			ID:       s.ID,
			Box:      Rect{X: 0, Y: top, W: w, H: h},
			Content:  Rect{X: margin, Y: top + 0.15*h, W: contentW, H: 0.75 * h},
			Progress: Rect{X: margin, Y: top + 0.30*h, W: contentW, H: progressH},
		}
		sb.Items = itemRects(s.Items, margin, top+0.38*h, contentW)
		p.Sections = append(p.Sections, sb)

		if doc.Carousel != nil && doc.Carousel.SectionID == s.ID {
			p.Carousel = carouselBox(len(doc.Carousel.Nodes), margin, top+0.40*h, contentW, 0.30*h)
		}
		top += h
	}
	p.Height = top

	n := len(doc.Nav)
	startX := w - navPad - float64(n)*(navLinkWidth+navLinkGap)
	for i := 0; i < n; i++ {
		p.Nav = append(p.Nav, Rect{X: startX + float64(i)*(navLinkWidth+navLinkGap), Y: 10, W: navLinkWidth, H: buttonHeight})
	}
	p.Swap = Rect{X: swapX, Y: 10, W: swapWidth, H: buttonHeight}
	return p
}

func itemRects(items []page.Item, x, y, w float64) []Rect {
	if len(items) == 0 {
		return nil
	}
	out := make([]Rect, len(items))
	if items[0].Kind == page.ItemTimelineNode {
		for i := range items {
			out[i] = Rect{X: x, Y: y + float64(i)*(nodeHeight+nodeGap), W: w * 0.6, H: nodeHeight}
		}
		return out
	}
	cols := int(w / cardMinWidth)
	cols = max(1, min(cols, len(items)))
	cw := (w - float64(cols-1)*cardGap) / float64(cols)
	for i := range items {
		col, row := i%cols, i/cols
		out[i] = Rect{X: x + float64(col)*(cw+cardGap), Y: y + float64(row)*(cardHeight+cardGap), W: cw, H: cardHeight}
	}
	return out
}

func carouselBox(n int, x, y, w, h float64) *CarouselBox {
	cb := &CarouselBox{Node: Rect{X: x, Y: y, W: w, H: h}}
	rowY := y + h + 16
	cb.Prev = Rect{X: x, Y: rowY, W: controlWidth, H: buttonHeight}
	cb.Next = Rect{X: x + w - controlWidth, Y: rowY, W: controlWidth, H: buttonHeight}
	span := float64(n-1)*dotSpacing + dotSize
	dx := x + (w-span)/2
	for i := 0; i < n; i++ {
		cb.Dots = append(cb.Dots, Rect{X: dx + float64(i)*dotSpacing, Y: rowY + (buttonHeight-dotSize)/2, W: dotSize, H: dotSize})
	}
	return cb
}

// Targets returns the observer targets for every section.
func (p *Page) Targets() []observe.Target {
	if p == nil {
		return nil
	}
	out := make([]observe.Target, len(p.Sections))
	for i, s := range p.Sections {
		out[i] = observe.Target{ID: s.ID, Top: s.Box.Y, Height: s.Box.H}
	}
	return out
}

// SectionTop returns the page y of section id.
func (p *Page) SectionTop(id string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	for _, s := range p.Sections {
		if s.ID == id {
			return s.Box.Y, true
		}
	}
	return 0, false
}

// ShortestSection returns the height of the shortest section, 0 for an
// empty page.
func (p *Page) ShortestSection() float64 {
	if p == nil || len(p.Sections) == 0 {
		return 0
	}
	h := p.Sections[0].Box.H
	for _, s := range p.Sections[1:] {
		h = min(h, s.Box.H)
	}
	return h
}

// MaxScroll is the largest valid scroll offset.
func (p *Page) MaxScroll() float64 {
	if p == nil {
		return 0
	}
	return max(0, p.Height-float64(p.Viewport.H))
}

// ClampScroll limits y to [0, MaxScroll].
func (p *Page) ClampScroll(y float64) float64 {
	return min(max(0, y), p.MaxScroll())
}

// Hit is the result of a hit test.
type Hit struct {
	Target string
	// LocalX and LocalY are relative to the hit element's top-left corner.
	LocalX, LocalY float64
}

// HitTest resolves the element under screen point (x, y).
func (p *Page) HitTest(x, y, scrollY float64) Hit {
	if p == nil {
		return Hit{}
	}
	for i, r := range p.Nav {
		if r.Contains(x, y) {
			return Hit{Target: NavTarget(i), LocalX: x - r.X, LocalY: y - r.Y}
		}
	}
	if p.Swap.Contains(x, y) {
		return Hit{Target: TargetSwap, LocalX: x - p.Swap.X, LocalY: y - p.Swap.Y}
	}
	if y < NavHeight {
		return Hit{}
	}
	py := y + scrollY
	if cb := p.Carousel; cb != nil {
		if cb.Prev.Contains(x, py) {
			return Hit{Target: TargetPrev}
		}
		if cb.Next.Contains(x, py) {
			return Hit{Target: TargetNext}
		}
		for i, d := range cb.Dots {
			// Dots are small; accept a few pixels of slack.
			if (Rect{X: d.X - 4, Y: d.Y - 4, W: d.W + 8, H: d.H + 8}).Contains(x, py) {
				return Hit{Target: DotTarget(i)}
			}
		}
	}
	return Hit{}
}

// Gallery is the geometry of the overlay view.
type Gallery struct {
	Viewport core.Size
	Header   Rect
	Cards    []Rect
	Footer   Rect
	Back     Rect
}

// BuildGallery lays n cards out in a grid.
func BuildGallery(n int, vp core.Size) *Gallery {
	w, h := float64(vp.W), float64(vp.H)
	g := &Gallery{
		Viewport: vp,
		Header:   Rect{X: 0, Y: 0, W: w, H: galleryHeader},
		Footer:   Rect{X: 0, Y: h - galleryFooter, W: w, H: galleryFooter},
		Back:     Rect{X: galleryPad, Y: h - galleryFooter + (galleryFooter-32)/2, W: 96, H: 32},
	}
	avail := max(1, w-2*galleryPad)
	cols := max(1, int((avail+galleryGap)/(galleryCardW+galleryGap)))
	cw := (avail - float64(cols-1)*galleryGap) / float64(cols)
	for i := 0; i < n; i++ {
		col, row := i%cols, i/cols
		g.Cards = append(g.Cards, Rect{
			X: galleryPad + float64(col)*(cw+galleryGap),
			Y: galleryHeader + galleryPad + float64(row)*(galleryCardH+galleryGap),
			W: cw,
			H: galleryCardH,
		})
	}
	return g
}

// HitTest resolves the gallery element under (x, y).
func (g *Gallery) HitTest(x, y float64) Hit {
	if g == nil {
		return Hit{}
	}
	if g.Back.Contains(x, y) {
		return Hit{Target: TargetBack}
	}
	for i, c := range g.Cards {
		if c.Contains(x, y) {
			return Hit{Target: CardTarget(i), LocalX: x - c.X, LocalY: y - c.Y}
		}
	}
	return Hit{}
}
