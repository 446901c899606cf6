package overlay

import (
	"errors"
	"reflect"
	"testing"

	"scroll-scene/internal/content"
	"scroll-scene/internal/core"
	"scroll-scene/internal/event"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/page"
)

type recorder struct {
	scrolls, teardowns, reinits int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		ScrollToTop: func() { r.scrolls++ },
		Teardown:    func() { r.teardowns++ },
		Reinit:      func() error { r.reinits++; return nil },
	}
}

func fixture(t *testing.T) (*page.Document, content.GallerySpec) {
	t.Helper()
	b, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	doc := b.Document()
	doc.Sections[0].Revealed = true
	doc.Sections[1].ProgressFill = 42
	return doc, b.Gallery()
}

func TestSwapInWaitsForDelay(t *testing.T) {
	doc, spec := fixture(t)
	sched := &core.Scheduler{}
	var r recorder
	s := New(doc, spec, sched, r.hooks(), nil)

	if err := s.SwapIn(); err != nil {
		t.Fatal(err)
	}
	if r.scrolls != 1 || !s.Pending() || s.State() != StateNormal {
		t.Fatalf("scrolls=%d pending=%v state=%v", r.scrolls, s.Pending(), s.State())
	}
	sched.Advance(Delay / 2)
	if s.State() != StateNormal || r.teardowns != 0 {
		t.Fatal("committed early")
	}
	sched.Advance(Delay / 2)
	if s.State() != StateOverlay || s.Pending() || r.teardowns != 1 {
		t.Fatalf("state=%v pending=%v teardowns=%d", s.State(), s.Pending(), r.teardowns)
	}
	if g := s.Gallery(); g == nil || len(g.Cards) != len(spec.Entries) {
		t.Fatalf("gallery = %+v", g)
	}
}

func TestNestedSwapIsRejected(t *testing.T) {
	doc, spec := fixture(t)
	sched := &core.Scheduler{}
	var r recorder
	s := New(doc, spec, sched, r.hooks(), nil)

	s.SwapIn()
	if err := s.SwapIn(); !errors.Is(err, ErrAlreadySwapped) {
		t.Fatalf("pending swap-in err = %v", err)
	}
	sched.Advance(Delay)
	snap := s.Snapshot()
	if err := s.SwapIn(); !errors.Is(err, ErrAlreadySwapped) {
		t.Fatalf("swapped swap-in err = %v", err)
	}
	sched.Advance(Delay)
	if s.Snapshot() != snap || r.teardowns != 1 || r.scrolls != 1 {
		t.Fatal("second swap-in took effect")
	}
}

func TestSwapOutRequiresOverlay(t *testing.T) {
	doc, spec := fixture(t)
	s := New(doc, spec, &core.Scheduler{}, Hooks{}, nil)
	if err := s.SwapOut(); !errors.Is(err, ErrNotSwapped) {
		t.Fatalf("err = %v", err)
	}
	s.SwapIn()
	if err := s.SwapOut(); !errors.Is(err, ErrNotSwapped) {
		t.Fatalf("pending err = %v", err)
	}
}

func TestRoundTripRestoresDocument(t *testing.T) {
	doc, spec := fixture(t)
	before := doc.Clone()
	var restored *page.Document
	s := New(doc, spec, nil, Hooks{Reinit: func() error {
		restored = doc.Clone()
		return nil
	}}, nil)

	if err := s.SwapIn(); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateOverlay {
		t.Fatal("nil scheduler should commit immediately")
	}
	// The live document may be scribbled on while the gallery shows.
	doc.Sections[0].Revealed = false
	doc.Sections = doc.Sections[:1]
	doc.Carousel = nil

	if err := s.SwapOut(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, restored) {
		t.Fatalf("restored document differs\nwant %+v\ngot  %+v", before, restored)
	}
	if s.Snapshot() != nil || s.Gallery() != nil || s.State() != StateNormal {
		t.Fatal("swap-out should discard the snapshot")
	}
}

func TestSwapOutReturnsReinitError(t *testing.T) {
	doc, spec := fixture(t)
	boom := errors.New("boom")
	s := New(doc, spec, nil, Hooks{Reinit: func() error { return boom }}, nil)
	s.SwapIn()
	if err := s.SwapOut(); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if s.State() != StateNormal {
		t.Fatal("state should be normal after a failed reinit")
	}
}

func TestCardHoverAndToggle(t *testing.T) {
	doc, spec := fixture(t)
	s := New(doc, spec, nil, Hooks{}, nil)
	s.SwapIn()

	s.Hover(1)
	cards := s.Gallery().Cards
	if !cards[1].ShowDetails() || cards[0].ShowDetails() {
		t.Fatal("hover should show only card 1")
	}
	s.Toggle(2)
	s.Hover(-1)
	if cards[1].ShowDetails() || !cards[2].ShowDetails() {
		t.Fatal("expanded card should stay open after hover leaves")
	}
	s.Toggle(2)
	if cards[2].ShowDetails() {
		t.Fatal("second toggle should collapse")
	}
	s.Toggle(99)
}

func TestBindDrivesSwap(t *testing.T) {
	doc, spec := fixture(t)
	sched := &core.Scheduler{}
	var r recorder
	s := New(doc, spec, sched, r.hooks(), nil)
	bus := event.NewBus(nil)
	s.Bind(bus)

	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.TargetBack})
	if s.State() != StateNormal {
		t.Fatal("back in normal state should be ignored")
	}
	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.TargetSwap})
	sched.Advance(Delay)
	if s.State() != StateOverlay {
		t.Fatal("swap button should swap in")
	}

	bus.Dispatch(event.Event{Topic: event.PointerMove, Target: layout.CardTarget(0)})
	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.CardTarget(3)})
	cards := s.Gallery().Cards
	if !cards[0].Hovered || !cards[3].Expanded {
		t.Fatalf("cards = %+v", cards[:4])
	}
	bus.Dispatch(event.Event{Topic: event.PointerMove})
	if cards[0].Hovered {
		t.Fatal("leaving the cards should clear hover")
	}

	bus.Dispatch(event.Event{Topic: event.Key, Key: event.KeyEscape})
	if s.State() != StateNormal || r.reinits != 1 {
		t.Fatalf("state=%v reinits=%d", s.State(), r.reinits)
	}
}
