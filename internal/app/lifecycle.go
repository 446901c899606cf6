package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"scroll-scene/internal/carousel"
	"scroll-scene/internal/content"
	"scroll-scene/internal/core"
	"scroll-scene/internal/event"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/nav"
	"scroll-scene/internal/observe"
	"scroll-scene/internal/page"
	"scroll-scene/internal/particles"
	"scroll-scene/internal/reveal"
	"scroll-scene/internal/theme"
	"scroll-scene/internal/tween"
	"scroll-scene/internal/viewport"
)

// ErrNoDocument is returned by Initialize when the root has no page to bind.
var ErrNoDocument = errors.New("app: root has no document")

// Bus owners held by a Handle, in subscription order.
const (
	ownerViewport  = "viewport"
	ownerParticles = "particles"
	ownerReveal    = "reveal"
	ownerTheme     = "theme"
)

var handleOwners = []string{ownerViewport, ownerParticles, ownerReveal, ownerTheme, carousel.Owner, nav.Owner}

// Root is everything Initialize binds against. The controller keeps one
// Root for the life of the program and updates the viewport fields as the
// window changes.
type Root struct {
	Doc    *page.Document
	Themes map[string]content.Theme

	// Surface is the particle render target. Nil disables the particle
	// field and viewport binding.
	Surface    viewport.Surface
	Width      int
	Height     int
	PixelRatio float64
	ScrollY    float64

	// Theme is the dominant section when the last handle was torn down.
	Theme string

	Count int
	Seed  int64
	TPS   int

	Engine *tween.Engine
	Bus    *event.Bus
	Log    *log.Logger

	// ScrollTo is called by nav links with a section id.
	ScrollTo func(sectionID string)
	// OnReveal and OnTheme observe the page components.
	OnReveal func(sectionID string)
	OnTheme  func(sectionID string)
}

// Handle is one initialized page. Components that could not be built are
// nil and everything that uses them skips them.
type Handle struct {
	ID uuid.UUID

	Viewport *viewport.Binding
	Field    *particles.Field
	Parallax *particles.Parallax
	Layout   *layout.Page
	Reveal   *reveal.Observer
	Theme    *theme.Transitioner
	Carousel *carousel.Carousel
	Nav      *nav.Links

	root   *Root
	closed bool
}

// Initialize builds every page component against root and subscribes them
// to root.Bus. It is safe to call again after Teardown, or even without
// one: each component subscribes under a fixed owner name, so a second
// Initialize replaces the first one's handlers instead of adding to them.
func Initialize(root *Root) (*Handle, error) {
	if root == nil || root.Doc == nil {
		return nil, ErrNoDocument
	}
	if root.Engine == nil {
		root.Engine = tween.NewEngine()
	}
	if root.Bus == nil {
		root.Bus = event.NewBus(root.Log)
	}
	h := &Handle{ID: uuid.New(), root: root}
	logf := func(format string, args ...any) {
		if root.Log != nil {
			root.Log.Printf("[%s] "+format, append([]any{h.ID.String()[:8]}, args...)...)
		}
	}

	size := core.Size{W: max(1, root.Width), H: max(1, root.Height)}
	vp, err := viewport.New(root.Surface, size.W, size.H, root.PixelRatio)
	if err != nil {
		logf("particles disabled: %v", err)
	} else {
		h.Viewport = vp
		h.Field = particles.New(root.Count, core.NewRNG(root.Seed))
		h.Parallax = particles.NewParallax(root.TPS)
	}
	h.Layout = layout.Build(root.Doc, size)

	h.Reveal = reveal.New(root.Doc, root.Engine, h.targets, reveal.WithLogger(root.Log), reveal.OnReveal(root.OnReveal))
	h.Theme = theme.New(&root.Doc.Style, root.Themes, root.Engine, h.targets, theme.WithLogger(root.Log), theme.OnChange(root.OnTheme), theme.Resume(root.Theme))
	for _, s := range root.Doc.Sections {
		if _, ok := root.Themes[s.ID]; !ok {
			logf("section %q has no theme", s.ID)
		}
	}

	if c, err := carousel.New(root.Doc.Carousel, root.Engine); err != nil {
		logf("carousel disabled: %v", err)
	} else {
		h.Carousel = c
	}
	h.Nav = nav.New(root.Doc, root.ScrollTo)

	h.subscribe()

	root.ScrollY = h.Layout.ClampScroll(root.ScrollY)
	h.Reveal.Observe(root.ScrollY, float64(size.H))
	h.Theme.Observe(root.ScrollY, float64(size.H))
	logf("initialized %dx%d scroll=%.0f particles=%d", size.W, size.H, root.ScrollY, h.Field.Count())
	return h, nil
}

func (h *Handle) targets() []observe.Target {
	return h.Layout.Targets()
}

// subscribe wires the handle to the bus. The viewport handler comes first
// so the layout is current before the observers look at it.
func (h *Handle) subscribe() {
	bus := h.root.Bus
	bus.Subscribe(event.Resize, ownerViewport, func(ev event.Event) {
		size := core.Size{W: max(1, ev.ViewportWidth), H: max(1, ev.ViewportHeight)}
		h.Viewport.Resize(size.W, size.H)
		h.Layout = layout.Build(h.root.Doc, size)
	})
	if h.Parallax != nil {
		bus.Subscribe(event.PointerMove, ownerParticles, func(ev event.Event) {
			s := h.Viewport.State()
			h.Parallax.Point(ev.X, ev.Y, s.Width, s.Height)
		})
	}
	check := func(fn func(scrollY, viewportH float64)) event.Handler {
		return func(ev event.Event) { fn(ev.ScrollY, float64(ev.ViewportHeight)) }
	}
	bus.Subscribe(event.Scroll, ownerReveal, check(h.Reveal.Check))
	bus.Subscribe(event.Resize, ownerReveal, check(h.Reveal.Check))
	bus.Subscribe(event.Scroll, ownerTheme, check(h.Theme.Check))
	bus.Subscribe(event.Resize, ownerTheme, check(h.Theme.Check))
	h.Carousel.Bind(bus)
	h.Nav.Bind(bus)
}

// Teardown unsubscribes every component and lands their running
// animations. Calling it twice is harmless.
func Teardown(h *Handle) error {
	if h == nil {
		return fmt.Errorf("teardown: nil handle")
	}
	if h.closed {
		return nil
	}
	h.closed = true
	for _, owner := range handleOwners {
		h.root.Bus.UnsubscribeOwner(owner)
	}
	h.Reveal.Disconnect()
	h.Theme.Disconnect()
	h.root.Theme = h.Theme.Active()
	h.Carousel.Release()
	if h.root.Log != nil {
		h.root.Log.Printf("[%s] torn down", h.ID.String()[:8])
	}
	return nil
}
