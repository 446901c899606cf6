// Package page holds the narrative document the scene is drawn from: the
// sections, their animatable children, the timeline carousel markup and the
// live style variables. Text fields hold catalog keys, not display copy.
package page

import "scroll-scene/internal/core"

// ItemKind tells the reveal animation how an item enters.
type ItemKind string

const (
	ItemTimelineNode ItemKind = "timeline-node"
	ItemProjectCard  ItemKind = "project-card"
)

// Item is an animatable child of a section.
type Item struct {
	Kind  ItemKind
	Label string

	Opacity float64
	OffsetX float64
	OffsetY float64
}

// Section is one narrative section.
type Section struct {
	ID       string
	Heading  string
	Body     string
	HeightVH float64

	// Progress is the 0-100 target of the section's progress bar when
	// HasProgress is set. ProgressFill is the animated value drawn.
	Progress     float64
	HasProgress  bool
	ProgressFill float64

	Items []Item

	// Revealed flips once, on the first time the section scrolls into view.
	Revealed bool
}

// Node is one carousel node.
type Node struct {
	Title   string
	Body    string
	Active  bool
	Visible bool
	Opacity float64
}

// Dot is one progress indicator under the carousel.
type Dot struct {
	Active bool
}

// Carousel is the timeline carousel markup.
type Carousel struct {
	SectionID    string
	Nodes        []Node
	Dots         []Dot
	PrevDisabled bool
	NextDisabled bool
}

// NavLink is an anchor in the fixed navigation bar.
type NavLink struct {
	Label  string
	Target string

	Hovered bool
	HoverX  float64
	HoverY  float64
}

// Style holds the global colour variables the theme animates.
type Style struct {
	Primary    core.RGB
	Secondary  core.RGB
	Background core.RGB
}

// Document is the whole normal-mode page.
type Document struct {
	Title     string
	SwapLabel string
	Nav       []NavLink
	Sections  []Section
	Carousel  *Carousel
	Style     Style
}

// Section finds a section by id.
func (d *Document) Section(id string) (*Section, int) {
	if d == nil {
		return nil, -1
	}
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i], i
		}
	}
	return nil, -1
}

// SectionIDs lists section ids in document order.
func (d *Document) SectionIDs() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.ID
	}
	return out
}

// Clone returns a deep copy that shares no slices with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Nav = cloneSlice(d.Nav)
	out.Sections = cloneSlice(d.Sections)
	for i := range out.Sections {
		out.Sections[i].Items = cloneSlice(out.Sections[i].Items)
	}
	if d.Carousel != nil {
		c := *d.Carousel
		c.Nodes = cloneSlice(c.Nodes)
		c.Dots = cloneSlice(c.Dots)
		out.Carousel = &c
	}
	return &out
}

// cloneSlice copies s, keeping nil and empty slices distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// Restore overwrites d in place with snap, so pointers held to d stay valid.
func (d *Document) Restore(snap *Document) {
	if d == nil || snap == nil {
		return
	}
	*d = *snap.Clone()
}
