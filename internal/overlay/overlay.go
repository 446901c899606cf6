// Package overlay swaps the narrative page for the gallery view and back.
//
// The swap is a two-state machine. SwapIn scrolls to the top, waits Delay
// and then commits: the page components are torn down, the document is
// snapshotted and the gallery becomes the visible view. SwapOut restores the
// snapshot and re-initializes the page before returning, so nothing queued
// behind it can reach a stale component.
package overlay

import (
	"errors"
	"log"
	"time"

	"scroll-scene/internal/content"
	"scroll-scene/internal/core"
	"scroll-scene/internal/page"
)

// State is the visible view.
type State int

const (
	StateNormal State = iota
	StateOverlay
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadySwapped rejects SwapIn while a swap is pending or active.
	ErrAlreadySwapped = errors.New("overlay: already swapped")
	// ErrNotSwapped rejects SwapOut from the normal view.
	ErrNotSwapped = errors.New("overlay: not swapped")
)

// Delay is how long SwapIn waits for the scroll to the top to settle.
const Delay = 500 * time.Millisecond

// Hooks connect the swap to the page lifecycle. Nil hooks are skipped.
type Hooks struct {
	// ScrollToTop starts the smooth scroll that precedes a swap.
	ScrollToTop func()
	// Teardown stops every page component before the snapshot.
	Teardown func()
	// Reinit rebuilds the page components against the restored document.
	Reinit func() error
}

// Card is one gallery entry with its interaction flags.
type Card struct {
	content.Entry
	Hovered  bool
	Expanded bool
}

// ShowDetails reports whether the long description overlay is shown.
func (c Card) ShowDetails() bool { return c.Hovered || c.Expanded }

// Gallery is the overlay view.
type Gallery struct {
	Title    string
	Subtitle string
	Footer   string
	Back     string
	Cards    []Card
}

func newGallery(spec content.GallerySpec) *Gallery {
	g := &Gallery{Title: spec.Title, Subtitle: spec.Subtitle, Footer: spec.Footer, Back: spec.Back}
	for _, e := range spec.Entries {
		g.Cards = append(g.Cards, Card{Entry: e})
	}
	return g
}

// Swap owns the view state.
type Swap struct {
	doc   *page.Document
	spec  content.GallerySpec
	sched *core.Scheduler
	hooks Hooks
	log   *log.Logger

	state    State
	pending  bool
	snapshot *page.Document
	gallery  *Gallery
}

// New returns a swap over doc in the normal state. Deferred commits run from
// sched.Advance.
func New(doc *page.Document, spec content.GallerySpec, sched *core.Scheduler, hooks Hooks, logger *log.Logger) *Swap {
	return &Swap{doc: doc, spec: spec, sched: sched, hooks: hooks, log: logger}
}

// State returns the visible view.
func (s *Swap) State() State { return s.state }

// Pending reports whether a SwapIn is waiting to commit.
func (s *Swap) Pending() bool { return s.pending }

// Gallery returns the overlay view, nil in the normal state.
func (s *Swap) Gallery() *Gallery { return s.gallery }

// Snapshot returns the saved page, nil in the normal state.
func (s *Swap) Snapshot() *page.Document { return s.snapshot }

// SwapIn starts the switch to the gallery.
func (s *Swap) SwapIn() error {
	if s.pending || s.state == StateOverlay {
		return ErrAlreadySwapped
	}
	s.pending = true
	if s.hooks.ScrollToTop != nil {
		s.hooks.ScrollToTop()
	}
	if s.sched == nil {
		s.commit()
		return nil
	}
	s.sched.After(Delay, s.commit)
	return nil
}

func (s *Swap) commit() {
	if !s.pending {
		return
	}
	s.pending = false
	if s.hooks.Teardown != nil {
		s.hooks.Teardown()
	}
	s.snapshot = s.doc.Clone()
	s.gallery = newGallery(s.spec)
	s.state = StateOverlay
	if s.log != nil {
		s.log.Printf("swap in: %d gallery cards", len(s.gallery.Cards))
	}
}

// SwapOut restores the saved page and re-initializes it. The view is back to
// normal even when Reinit fails; its error is returned.
func (s *Swap) SwapOut() error {
	if s.state != StateOverlay {
		return ErrNotSwapped
	}
	s.doc.Restore(s.snapshot)
	s.snapshot = nil
	s.gallery = nil
	s.state = StateNormal
	if s.log != nil {
		s.log.Printf("swap out")
	}
	if s.hooks.Reinit != nil {
		return s.hooks.Reinit()
	}
	return nil
}

// Hover marks card i as hovered and clears every other card. A negative i
// clears them all.
func (s *Swap) Hover(i int) {
	if s.gallery == nil {
		return
	}
	for j := range s.gallery.Cards {
		s.gallery.Cards[j].Hovered = j == i
	}
}

// Toggle flips card i's expanded flag.
func (s *Swap) Toggle(i int) {
	if s.gallery == nil || i < 0 || i >= len(s.gallery.Cards) {
		return
	}
	c := &s.gallery.Cards[i]
	c.Expanded = !c.Expanded
}
