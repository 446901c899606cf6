// Package theme cross-fades the page palette to whichever section currently
// owns the middle of the viewport.
package theme

import (
	"errors"
	"fmt"
	"log"
	"time"

	"scroll-scene/internal/content"
	"scroll-scene/internal/core"
	"scroll-scene/internal/observe"
	"scroll-scene/internal/page"
	"scroll-scene/internal/tween"
)

// ErrUnknownTheme is returned for a section id with no palette.
var ErrUnknownTheme = errors.New("theme: unknown theme")

const (
	// RootMargin collapses the observed root to the viewport midline.
	RootMargin = -0.5
	// Duration of one cross-fade.
	Duration = time.Second

	tweenKey = "theme"
)

// Transitioner animates page.Style between section themes.
type Transitioner struct {
	style    *page.Style
	themes   map[string]content.Theme
	engine   *tween.Engine
	obs      *observe.Observer
	log      *log.Logger
	active   string
	resume   string
	onChange func(id string)
}

// Option customizes a Transitioner.
type Option func(*Transitioner)

// WithLogger logs skipped transitions.
func WithLogger(l *log.Logger) Option { return func(t *Transitioner) { t.log = l } }

// OnChange registers a callback run on every dominance change.
func OnChange(fn func(id string)) Option { return func(t *Transitioner) { t.onChange = fn } }

// Resume carries the active section over from a previous transitioner.
// It is only adopted while the style still shows that section's palette,
// so the first Observe does not fade to a theme already on screen.
func Resume(id string) Option { return func(t *Transitioner) { t.resume = id } }

// New builds a transitioner writing into style.
func New(style *page.Style, themes map[string]content.Theme, engine *tween.Engine, targets func() []observe.Target, opts ...Option) *Transitioner {
	t := &Transitioner{style: style, themes: themes, engine: engine}
	for _, opt := range opts {
		opt(t)
	}
	if th, ok := themes[t.resume]; ok && style != nil && *style == (page.Style{Primary: th.Primary, Secondary: th.Secondary, Background: th.Background}) {
		t.active = t.resume
	}
	t.obs = observe.New(observe.Options{RootMargin: RootMargin}, targets, t.handle)
	return t
}

// Observe starts watching and adopts the theme of the section on the
// midline.
func (t *Transitioner) Observe(scrollY, viewportH float64) {
	if t == nil {
		return
	}
	t.obs.Observe(scrollY, viewportH)
}

// Check processes a scroll or resize.
func (t *Transitioner) Check(scrollY, viewportH float64) {
	if t == nil {
		return
	}
	t.obs.Check(scrollY, viewportH)
}

// Disconnect stops watching and lands any running cross-fade.
func (t *Transitioner) Disconnect() {
	if t == nil {
		return
	}
	t.obs.Disconnect()
	if t.engine != nil {
		t.engine.Complete(tweenKey)
	}
}

// Active returns the id of the most recently dominant section.
func (t *Transitioner) Active() string {
	if t == nil {
		return ""
	}
	return t.active
}

func (t *Transitioner) handle(entries []observe.Entry) {
	for _, e := range entries {
		if !e.IsIntersecting {
			continue
		}
		if err := t.TransitionTo(e.ID); err != nil && t.log != nil {
			t.log.Printf("theme: %v", err)
		}
	}
}

// TransitionTo starts a cross-fade to the theme of section id, replacing
// any cross-fade still running. Unknown ids leave the current theme alone.
func (t *Transitioner) TransitionTo(id string) error {
	if t == nil {
		return nil
	}
	th, ok := t.themes[id]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTheme, id)
	}
	if id == t.active {
		return nil
	}
	t.active = id
	t.fade(&t.style.Primary, th.Primary)
	t.fade(&t.style.Secondary, th.Secondary)
	t.fade(&t.style.Background, th.Background)
	if t.onChange != nil {
		t.onChange(id)
	}
	return nil
}

func (t *Transitioner) fade(c *core.RGB, to core.RGB) {
	if t.engine == nil {
		*c = to
		return
	}
	dst := [3]float64{to.R, to.G, to.B}
	for i, ch := range c.Channels() {
		t.engine.To(ch, dst[i], tween.Options{Duration: Duration, Ease: "power2.inOut", Key: tweenKey})
	}
}
