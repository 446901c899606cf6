// Package reveal plays each section's entrance animation the first time it
// scrolls into view.
package reveal

import (
	"log"
	"time"

	"scroll-scene/internal/observe"
	"scroll-scene/internal/page"
	"scroll-scene/internal/tween"
)

const (
	// Threshold is the visible fraction that triggers a reveal.
	Threshold = 0.1

	// Stagger is the extra delay per item index.
	Stagger = 200 * time.Millisecond
	// ItemDuration is how long one item takes to enter.
	ItemDuration = 800 * time.Millisecond
	// ProgressDuration is how long a progress bar takes to fill.
	ProgressDuration = 1500 * time.Millisecond

	// NodeOffsetX and CardOffsetY are the entrance start offsets, pixels.
	NodeOffsetX = -50
	CardOffsetY = 50

	tweenKey = "reveal"
)

// Observer reveals sections of a document.
type Observer struct {
	doc      *page.Document
	engine   *tween.Engine
	obs      *observe.Observer
	log      *log.Logger
	onReveal func(id string)
}

// Option customizes an Observer.
type Option func(*Observer)

// WithLogger logs each reveal.
func WithLogger(l *log.Logger) Option { return func(o *Observer) { o.log = l } }

// OnReveal registers a callback run after each section's reveal starts.
func OnReveal(fn func(id string)) Option { return func(o *Observer) { o.onReveal = fn } }

// New builds an observer over doc. targets supplies the section geometry.
func New(doc *page.Document, engine *tween.Engine, targets func() []observe.Target, opts ...Option) *Observer {
	o := &Observer{doc: doc, engine: engine}
	for _, opt := range opts {
		opt(o)
	}
	o.obs = observe.New(observe.Options{Threshold: Threshold}, targets, o.handle)
	return o
}

// Observe starts watching and reveals whatever is already in view.
func (o *Observer) Observe(scrollY, viewportH float64) {
	if o == nil {
		return
	}
	o.obs.Observe(scrollY, viewportH)
}

// Check processes a scroll or resize.
func (o *Observer) Check(scrollY, viewportH float64) {
	if o == nil {
		return
	}
	o.obs.Check(scrollY, viewportH)
}

// Disconnect stops watching. Running entrance animations jump to their end
// state so a revealed section is never left half faded.
func (o *Observer) Disconnect() {
	if o == nil {
		return
	}
	o.obs.Disconnect()
	if o.engine != nil {
		o.engine.Complete(tweenKey)
	}
}

func (o *Observer) handle(entries []observe.Entry) {
	for _, e := range entries {
		if !e.IsIntersecting {
			continue
		}
		sec, _ := o.doc.Section(e.ID)
		if sec == nil || sec.Revealed {
			continue
		}
		sec.Revealed = true
		o.animate(sec)
		if o.log != nil {
			o.log.Printf("reveal %s", sec.ID)
		}
		if o.onReveal != nil {
			o.onReveal(sec.ID)
		}
	}
}

// animate starts the section's entrance. Item pointers stay valid because
// nothing resizes a section's item slice while the page is live.
func (o *Observer) animate(sec *page.Section) {
	if o.engine == nil {
		sec.ProgressFill = sec.Progress
		return
	}
	if sec.HasProgress {
		o.engine.To(&sec.ProgressFill, sec.Progress, tween.Options{
			Duration: ProgressDuration,
			Ease:     "power2.out",
			Key:      tweenKey,
		})
	}
	nodes, cards := 0, 0
	for i := range sec.Items {
		it := &sec.Items[i]
		switch it.Kind {
		case page.ItemTimelineNode:
			opts := tween.Options{Duration: ItemDuration, Delay: time.Duration(nodes) * Stagger, Ease: "power2.out", Key: tweenKey}
			o.engine.From(&it.Opacity, 0, opts)
			o.engine.From(&it.OffsetX, NodeOffsetX, opts)
			nodes++
		case page.ItemProjectCard:
			opts := tween.Options{Duration: ItemDuration, Delay: time.Duration(cards) * Stagger, Ease: "power3.out", Key: tweenKey}
			o.engine.From(&it.Opacity, 0, opts)
			o.engine.From(&it.OffsetY, CardOffsetY, opts)
			cards++
		}
	}
}
