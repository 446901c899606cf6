// Package carousel steps the timeline carousel: one visible node at a time,
// moved by prev/next controls or by picking a progress dot.
package carousel

import (
	"errors"
	"time"

	"scroll-scene/internal/event"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/page"
	"scroll-scene/internal/tween"
)

// ErrNoCarousel is returned when the page has no carousel markup.
var ErrNoCarousel = errors.New("carousel: markup missing")

// FadeDuration is the node fade-in time.
const FadeDuration = 300 * time.Millisecond

const tweenKey = "carousel"

// Carousel drives a page.Carousel.
type Carousel struct {
	m      *page.Carousel
	engine *tween.Engine
	index  int
}

// New takes over m. The starting node is the one the markup already marks
// active (the first one if none is). Progress dots are rebuilt from scratch,
// so calling New again on the same markup is safe.
func New(m *page.Carousel, engine *tween.Engine) (*Carousel, error) {
	if m == nil || len(m.Nodes) == 0 {
		return nil, ErrNoCarousel
	}
	c := &Carousel{m: m, engine: engine}
	for i, n := range m.Nodes {
		if n.Active {
			c.index = i
			break
		}
	}
	m.Dots = m.Dots[:0]
	for range m.Nodes {
		m.Dots = append(m.Dots, page.Dot{})
	}
	c.apply(false)
	return c, nil
}

// Index returns the active node.
func (c *Carousel) Index() int {
	if c == nil {
		return 0
	}
	return c.index
}

// GoTo shows node i. Out-of-range indices are ignored.
func (c *Carousel) GoTo(i int) {
	if c == nil || i < 0 || i >= len(c.m.Nodes) {
		return
	}
	c.index = i
	c.apply(true)
}

// Prev steps back one node, stopping at the first.
func (c *Carousel) Prev() {
	if c == nil || c.index == 0 {
		return
	}
	c.GoTo(c.index - 1)
}

// Next steps forward one node, stopping at the last.
func (c *Carousel) Next() {
	if c == nil || c.index == len(c.m.Nodes)-1 {
		return
	}
	c.GoTo(c.index + 1)
}

// Release lands any running fade.
func (c *Carousel) Release() {
	if c == nil || c.engine == nil {
		return
	}
	c.engine.Complete(tweenKey)
}

// apply derives every node, dot and control flag from index.
func (c *Carousel) apply(fade bool) {
	for i := range c.m.Nodes {
		n := &c.m.Nodes[i]
		on := i == c.index
		n.Active = on
		n.Visible = on
		if !on {
			if c.engine != nil {
				c.engine.KillTarget(&n.Opacity)
			}
			n.Opacity = 1
		}
	}
	for i := range c.m.Dots {
		c.m.Dots[i].Active = i == c.index
	}
	c.m.PrevDisabled = c.index == 0
	c.m.NextDisabled = c.index == len(c.m.Nodes)-1

	if fade && c.engine != nil {
		c.engine.From(&c.m.Nodes[c.index].Opacity, 0, tween.Options{Duration: FadeDuration, Ease: "power2.out", Key: tweenKey})
	}
}

// Owner is the bus owner name used by Bind.
const Owner = "carousel"

// Bind routes control clicks and the arrow keys to c. Binding again replaces
// the earlier handlers.
func (c *Carousel) Bind(bus *event.Bus) {
	if c == nil || bus == nil {
		return
	}
	bus.Subscribe(event.Click, Owner, func(ev event.Event) {
		switch ev.Target {
		case layout.TargetPrev:
			c.Prev()
		case layout.TargetNext:
			c.Next()
		default:
			if i, ok := layout.DotIndex(ev.Target); ok {
				c.GoTo(i)
			}
		}
	})
	bus.Subscribe(event.Key, Owner, func(ev event.Event) {
		switch ev.Key {
		case event.KeyLeft:
			c.Prev()
		case event.KeyRight:
			c.Next()
		}
	})
}
