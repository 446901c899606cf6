// Package nav handles the fixed navigation bar: the pointer glow that
// follows the cursor over a link and the scroll to a link's section.
package nav

import (
	"scroll-scene/internal/event"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/page"
)

// Owner is the bus owner name used by Bind.
const Owner = "nav"

// Links drives the document's nav links.
type Links struct {
	doc      *page.Document
	scrollTo func(sectionID string)
}

// New returns a handler for doc's links. scrollTo is called with the target
// section id when a link is clicked.
func New(doc *page.Document, scrollTo func(sectionID string)) *Links {
	return &Links{doc: doc, scrollTo: scrollTo}
}

// Point records the pointer over link i at the given link-local offset and
// clears every other link. A negative i clears them all.
func (l *Links) Point(i int, localX, localY float64) {
	for j := range l.doc.Nav {
		link := &l.doc.Nav[j]
		link.Hovered = j == i
		if link.Hovered {
			link.HoverX, link.HoverY = localX, localY
		}
	}
}

// Follow scrolls to link i's section.
func (l *Links) Follow(i int) {
	if i < 0 || i >= len(l.doc.Nav) || l.scrollTo == nil {
		return
	}
	l.scrollTo(l.doc.Nav[i].Target)
}

// Bind subscribes the link handlers.
func (l *Links) Bind(bus *event.Bus) {
	bus.Subscribe(event.PointerMove, Owner, func(ev event.Event) {
		i, ok := layout.NavIndex(ev.Target)
		if !ok {
			i = -1
		}
		l.Point(i, ev.LocalX, ev.LocalY)
	})
	bus.Subscribe(event.Click, Owner, func(ev event.Event) {
		if i, ok := layout.NavIndex(ev.Target); ok {
			l.Follow(i)
		}
	})
}
