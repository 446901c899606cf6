// Package tween animates float64 targets over time.
//
// Each tween is a gween.Tween over progress in [0, 1] that the engine maps
// onto its float64 target; delays and keys are tracked here. Starting a new
// tween on a target that is already animating replaces the running one, so
// rapid retriggers never queue.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Options configures a single tween.
type Options struct {
	Duration time.Duration
	Delay    time.Duration
	Ease     string
	// Key groups tweens so they can be killed together.
	Key string
	// OnComplete runs once when the tween reaches its end value.
	OnComplete func()
}

// Tween is one running animation.
type Tween struct {
	target   *float64
	from, to float64
	fromSet  bool
	opts     Options
	curve    ease.TweenFunc

	// motion is built when the delay runs out, from the value found then.
	motion  *gween.Tween
	wait    time.Duration
	elapsed time.Duration
	done    bool
}

// Done reports whether the tween finished or was killed.
func (t *Tween) Done() bool { return t == nil || t.done }

// Engine owns every running tween.
type Engine struct {
	tweens []*Tween
}

// NewEngine returns an empty engine.
func NewEngine() *Engine { return &Engine{} }

// To animates *target from its value at start time to end.
func (e *Engine) To(target *float64, end float64, opts Options) *Tween {
	if target == nil {
		return nil
	}
	tw := &Tween{target: target, to: end, opts: opts, curve: Lookup(opts.Ease), wait: opts.Delay}
	e.add(tw)
	return tw
}

// From sets *target to start immediately and animates it back to the value
// it held before the call.
func (e *Engine) From(target *float64, start float64, opts Options) *Tween {
	if target == nil {
		return nil
	}
	tw := &Tween{target: target, from: start, fromSet: true, to: *target, opts: opts, curve: Lookup(opts.Ease), wait: opts.Delay}
	e.add(tw)
	*target = start
	return tw
}

// Set kills any tween on target and assigns v.
func (e *Engine) Set(target *float64, v float64) {
	if target == nil {
		return
	}
	e.KillTarget(target)
	*target = v
}

func (e *Engine) add(tw *Tween) {
	// A from-tween that replaces a running one must settle towards that
	// tween's destination, not the intermediate value.
	for _, old := range e.tweens {
		if old.target == tw.target && !old.done {
			if tw.fromSet {
				tw.to = old.to
			}
			old.done = true
		}
	}
	e.tweens = append(e.tweens, tw)
	if tw.opts.Duration <= 0 && tw.opts.Delay <= 0 {
		e.finish(tw)
	}
}

// Step advances every tween by dt and drops finished ones.
func (e *Engine) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	live := e.tweens[:0]
	// Completion callbacks may start new tweens; collect them after the pass.
	var completed []*Tween
	for _, tw := range e.tweens {
		if tw.done {
			continue
		}
		if tw.advance(dt) {
			tw.done = true
			completed = append(completed, tw)
			continue
		}
		live = append(live, tw)
	}
	for i := len(live); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = live
	for _, tw := range completed {
		if tw.opts.OnComplete != nil {
			tw.opts.OnComplete()
		}
	}
}

// advance moves tw forward by dt and reports whether it reached its end.
func (tw *Tween) advance(dt time.Duration) bool {
	if tw.wait > 0 {
		if dt < tw.wait {
			tw.wait -= dt
			return false
		}
		dt -= tw.wait
		tw.wait = 0
	}
	if tw.motion == nil {
		if !tw.fromSet {
			tw.from = *tw.target
		}
		tw.motion = gween.New(0, 1, float32(tw.opts.Duration.Seconds()), tw.curve)
	}
	tw.elapsed += dt
	p, finished := tw.motion.Set(float32(tw.elapsed.Seconds()))
	if finished {
		*tw.target = tw.to
		return true
	}
	*tw.target = tw.from + (tw.to-tw.from)*float64(p)
	return false
}

func (e *Engine) finish(tw *Tween) {
	*tw.target = tw.to
	tw.done = true
	if tw.opts.OnComplete != nil {
		tw.opts.OnComplete()
	}
}

// KillTarget stops every tween on target, leaving its current value.
func (e *Engine) KillTarget(target *float64) {
	for _, tw := range e.tweens {
		if tw.target == target {
			tw.done = true
		}
	}
}

// Kill stops every tween started with the given key.
func (e *Engine) Kill(key string) {
	for _, tw := range e.tweens {
		if tw.opts.Key == key {
			tw.done = true
		}
	}
}

// Complete jumps every tween started with key to its end value.
func (e *Engine) Complete(key string) {
	var completed []*Tween
	for _, tw := range e.tweens {
		if tw.opts.Key == key && !tw.done {
			*tw.target = tw.to
			tw.done = true
			completed = append(completed, tw)
		}
	}
	for _, tw := range completed {
		if tw.opts.OnComplete != nil {
			tw.opts.OnComplete()
		}
	}
}

// Active counts tweens that have not finished.
func (e *Engine) Active() int {
	n := 0
	for _, tw := range e.tweens {
		if !tw.done {
			n++
		}
	}
	return n
}
