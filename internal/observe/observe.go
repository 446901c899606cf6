// Package observe reports when page sections cross into and out of a
// (possibly shrunken) viewport, the way an intersection observer does.
package observe

// Target is one observed element in page coordinates.
type Target struct {
	ID     string
	Top    float64
	Height float64
}

// Options shapes the root box targets are tested against.
type Options struct {
	// RootMargin grows (positive) or shrinks (negative) the viewport at the
	// top and at the bottom, as a fraction of the viewport height. -0.5
	// collapses the root to the horizontal midline.
	RootMargin float64
	// Threshold is the visible fraction of a target, in [0, 1], at which it
	// counts as intersecting.
	Threshold float64
}

// Entry reports one target's new state.
type Entry struct {
	ID             string
	Index          int
	IsIntersecting bool
	Ratio          float64
}

// Callback receives the entries that changed, in document order.
type Callback func([]Entry)

// Observer tracks the intersecting state of a set of targets.
type Observer struct {
	opts     Options
	source   func() []Target
	cb       Callback
	state    map[string]bool
	observed bool
	closed   bool
}

// New builds an observer. source is called on every check so targets
// follow layout changes.
func New(opts Options, source func() []Target, cb Callback) *Observer {
	return &Observer{opts: opts, source: source, cb: cb, state: map[string]bool{}}
}

// Observe starts observing and reports the current state of every target.
func (o *Observer) Observe(scrollY, viewportH float64) {
	if o == nil || o.closed {
		return
	}
	o.observed = true
	o.state = map[string]bool{}
	o.check(scrollY, viewportH, true)
}

// Check reports targets whose intersecting state changed since the last
// call.
func (o *Observer) Check(scrollY, viewportH float64) {
	if o == nil || o.closed || !o.observed {
		return
	}
	o.check(scrollY, viewportH, false)
}

// Disconnect stops all reporting.
func (o *Observer) Disconnect() {
	if o == nil {
		return
	}
	o.closed = true
	o.state = map[string]bool{}
}

func (o *Observer) check(scrollY, viewportH float64, initial bool) {
	if o.source == nil || viewportH <= 0 {
		return
	}
	targets := o.source()
	var entries []Entry
	for i, t := range targets {
		in, ratio := o.intersect(t, scrollY, viewportH)
		prev, seen := o.state[t.ID]
		o.state[t.ID] = in
		if initial || !seen || prev != in {
			entries = append(entries, Entry{ID: t.ID, Index: i, IsIntersecting: in, Ratio: ratio})
		}
	}
	if len(entries) > 0 && o.cb != nil {
		o.cb(entries)
	}
}

func (o *Observer) intersect(t Target, scrollY, viewportH float64) (bool, float64) {
	margin := o.opts.RootMargin * viewportH
	rootTop := scrollY - margin
	rootBottom := scrollY + viewportH + margin
	top, bottom := t.Top, t.Top+t.Height

	if rootBottom <= rootTop {
		// Degenerate root: a trigger line. Half-open so a boundary sitting
		// exactly on the line belongs to the section below it.
		line := (rootTop + rootBottom) / 2
		return top <= line && line < bottom, 0
	}

	overlap := min(bottom, rootBottom) - max(top, rootTop)
	if overlap <= 0 {
		return false, 0
	}
	ratio := 1.0
	if t.Height > 0 {
		ratio = overlap / t.Height
	}
	return ratio >= o.opts.Threshold, ratio
}
