package app

import (
	"fmt"
	"log"
	"math"
	"time"

	"scroll-scene/internal/content"
	"scroll-scene/internal/core"
	"scroll-scene/internal/event"
	"scroll-scene/internal/i18n"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/overlay"
	"scroll-scene/internal/page"
	"scroll-scene/internal/tween"
	"scroll-scene/internal/viewport"
)

// SmoothScrollDuration is the length of an anchor or scroll-to-top glide.
// It is shorter than overlay.Delay so a swap commits at the top.
const SmoothScrollDuration = 400 * time.Millisecond

const scrollKey = "scroll"

// Options are the collaborators a Controller is built from.
type Options struct {
	Bundle     *content.Bundle
	Translator *i18n.Translator
	// Surface is the particle render target; nil runs without particles.
	Surface    viewport.Surface
	PixelRatio float64
	Log        *log.Logger

	OnReveal func(sectionID string)
	OnTheme  func(sectionID string)
}

// Controller owns the page for the life of the program: the UI state, the
// scroll position, the frame loop and the swap between the page and the
// gallery. All methods run on the frame loop goroutine.
type Controller struct {
	log    *log.Logger
	tr     *i18n.Translator
	engine *tween.Engine
	bus    *event.Bus
	sched  *core.Scheduler
	root   *Root
	handle *Handle
	swap   *overlay.Swap

	gallery *layout.Gallery

	// scroll is the requested offset; the applied one is root.ScrollY.
	scroll float64

	failures map[string]int
}

// NewController loads the document from opts.Bundle and initializes it.
func NewController(cfg *Config, opts Options) (*Controller, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opts.Bundle == nil {
		return nil, fmt.Errorf("controller: no content bundle")
	}
	c := &Controller{
		log:      opts.Log,
		tr:       opts.Translator,
		engine:   tween.NewEngine(),
		sched:    &core.Scheduler{},
		failures: map[string]int{},
	}
	c.bus = event.NewBus(opts.Log)
	doc := opts.Bundle.Document()
	c.root = &Root{
		Doc:        doc,
		Themes:     opts.Bundle.Themes(),
		Surface:    opts.Surface,
		Width:      cfg.Width,
		Height:     cfg.Height,
		PixelRatio: opts.PixelRatio,
		Count:      cfg.Count,
		Seed:       cfg.Seed,
		TPS:        cfg.TPS,
		Engine:     c.engine,
		Bus:        c.bus,
		Log:        opts.Log,
		ScrollTo:   c.ScrollTo,
		OnReveal:   opts.OnReveal,
		OnTheme:    opts.OnTheme,
	}
	c.swap = overlay.New(doc, opts.Bundle.Gallery(), c.sched, overlay.Hooks{
		ScrollToTop: func() { c.SmoothScroll(0) },
		Teardown:    c.teardown,
		Reinit:      c.initialize,
	}, opts.Log)
	c.swap.Bind(c.bus)
	if err := c.initialize(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) initialize() error {
	h, err := Initialize(c.root)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	c.handle = h
	c.scroll = c.root.ScrollY
	return nil
}

func (c *Controller) teardown() {
	if c.handle == nil {
		return
	}
	if err := Teardown(c.handle); err != nil && c.log != nil {
		c.log.Printf("teardown: %v", err)
	}
	c.handle = nil
}

// Reinitialize tears the page components down and builds them again
// against the current document.
func (c *Controller) Reinitialize() error {
	if c.swap.State() != overlay.StateNormal {
		return overlay.ErrAlreadySwapped
	}
	c.teardown()
	return c.initialize()
}

// State returns the visible view.
func (c *Controller) State() overlay.State { return c.swap.State() }

// Swap exposes the overlay state machine.
func (c *Controller) Swap() *overlay.Swap { return c.swap }

// Doc returns the live document.
func (c *Controller) Doc() *page.Document { return c.root.Doc }

// Handle returns the current page handle, nil while the gallery shows.
func (c *Controller) Handle() *Handle { return c.handle }

// Bus returns the event bus.
func (c *Controller) Bus() *event.Bus { return c.bus }

// Translator returns the display translator.
func (c *Controller) Translator() *i18n.Translator { return c.tr }

// ScrollY returns the applied scroll offset.
func (c *Controller) ScrollY() float64 { return c.root.ScrollY }

// ViewportSize returns the logical window size.
func (c *Controller) ViewportSize() core.Size {
	return core.Size{W: c.root.Width, H: c.root.Height}
}

// Layout returns the page geometry, nil while the gallery shows.
func (c *Controller) Layout() *layout.Page {
	if c.handle == nil {
		return nil
	}
	return c.handle.Layout
}

// GalleryLayout returns the gallery geometry, nil on the normal page.
func (c *Controller) GalleryLayout() *layout.Gallery {
	g := c.swap.Gallery()
	if g == nil {
		c.gallery = nil
		return nil
	}
	size := c.ViewportSize()
	if c.gallery == nil || c.gallery.Viewport != size || len(c.gallery.Cards) != len(g.Cards) {
		c.gallery = layout.BuildGallery(len(g.Cards), size)
	}
	return c.gallery
}

// ScrollTo glides to the top of a section.
func (c *Controller) ScrollTo(sectionID string) {
	top, ok := c.Layout().SectionTop(sectionID)
	if !ok {
		if c.log != nil {
			c.log.Printf("scroll to %q: no such section", sectionID)
		}
		return
	}
	c.SmoothScroll(top)
}

// SmoothScroll glides to page offset y.
func (c *Controller) SmoothScroll(y float64) {
	y = c.clampScroll(y)
	c.engine.To(&c.scroll, y, tween.Options{Duration: SmoothScrollDuration, Ease: "cubic.inOut", Key: scrollKey})
}

// Wheel scrolls by dy pixels at once, cancelling any glide.
func (c *Controller) Wheel(dy float64) {
	if c.swap.State() != overlay.StateNormal || dy == 0 {
		return
	}
	c.engine.Kill(scrollKey)
	c.scroll = c.clampScroll(c.scroll + dy)
	c.applyScroll()
}

func (c *Controller) clampScroll(y float64) float64 {
	if l := c.Layout(); l != nil {
		return l.ClampScroll(y)
	}
	return max(0, y)
}

// applyScroll moves the applied offset to the requested one. Large jumps
// are split into steps, each its own scroll event, so the midline lands
// inside every section it passes. A step is at most a quarter viewport and
// at most half the shortest section.
func (c *Controller) applyScroll() {
	target := c.scroll
	chunk := float64(c.root.Height) / 4
	if h := c.Layout().ShortestSection(); h > 0 {
		chunk = min(chunk, h/2)
	}
	chunk = max(1, chunk)
	for c.root.ScrollY != target {
		delta := target - c.root.ScrollY
		if math.Abs(delta) > chunk {
			c.root.ScrollY += math.Copysign(chunk, delta)
		} else {
			c.root.ScrollY = target
		}
		c.bus.Dispatch(event.Event{Topic: event.Scroll, ScrollY: c.root.ScrollY, ViewportWidth: c.root.Width, ViewportHeight: c.root.Height})
	}
}

// Resize applies a new logical window size.
func (c *Controller) Resize(width, height int) {
	width, height = max(1, width), max(1, height)
	if width == c.root.Width && height == c.root.Height {
		return
	}
	c.root.Width, c.root.Height = width, height
	c.bus.Dispatch(event.Event{Topic: event.Resize, ScrollY: c.root.ScrollY, ViewportWidth: width, ViewportHeight: height})
	if c.swap.State() == overlay.StateNormal {
		c.engine.Set(&c.scroll, c.clampScroll(c.scroll))
		c.applyScroll()
	}
}

// SetPixelRatio forwards a device pixel ratio change to the viewport.
func (c *Controller) SetPixelRatio(ratio float64) {
	if ratio == c.root.PixelRatio {
		return
	}
	c.root.PixelRatio = ratio
	if c.handle != nil {
		c.handle.Viewport.SetPixelRatio(ratio)
	}
}

func (c *Controller) hit(x, y float64) layout.Hit {
	if c.swap.State() == overlay.StateOverlay {
		return c.GalleryLayout().HitTest(x, y)
	}
	return c.Layout().HitTest(x, y, c.root.ScrollY)
}

// PointerMove routes a pointer position in logical pixels.
func (c *Controller) PointerMove(x, y float64) {
	h := c.hit(x, y)
	c.bus.Dispatch(event.Event{Topic: event.PointerMove, X: x, Y: y, Target: h.Target, LocalX: h.LocalX, LocalY: h.LocalY})
}

// Click routes a primary button press.
func (c *Controller) Click(x, y float64) {
	h := c.hit(x, y)
	if h.Target == "" {
		return
	}
	c.bus.Dispatch(event.Event{Topic: event.Click, X: x, Y: y, Target: h.Target, LocalX: h.LocalX, LocalY: h.LocalY})
}

// Key routes a named key press.
func (c *Controller) Key(name string) {
	if name == event.KeyHome && c.swap.State() == overlay.StateNormal {
		c.SmoothScroll(0)
	}
	c.bus.Dispatch(event.Event{Topic: event.Key, Key: name})
}

// Frame advances everything by one frame. dt is the frame time; now is
// wall-clock seconds and drives the particle wobble. A subsystem that
// panics is logged and skipped for this frame only.
func (c *Controller) Frame(dt time.Duration, now float64) {
	c.safely("scheduler", func() { c.sched.Advance(dt) })
	c.safely("tween", func() { c.engine.Step(dt) })
	c.safely("scroll", c.applyScroll)
	c.safely("particles", func() {
		if c.handle == nil {
			return
		}
		c.handle.Field.Advance(now)
		c.handle.Parallax.Step()
	})
}

func (c *Controller) safely(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.failures[name]++
			if c.failures[name] == 1 && c.log != nil {
				c.log.Printf("frame: %s failed: %v (further failures counted silently)", name, r)
			}
		}
	}()
	fn()
}

// Failures reports how many frames each subsystem has failed.
func (c *Controller) Failures() map[string]int {
	out := make(map[string]int, len(c.failures))
	for k, v := range c.failures {
		out[k] = v
	}
	return out
}
