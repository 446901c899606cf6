package carousel

import (
	"errors"
	"testing"

	"scroll-scene/internal/event"
	"scroll-scene/internal/layout"
	"scroll-scene/internal/page"
	"scroll-scene/internal/tween"
)

func markup(n, active int) *page.Carousel {
	m := &page.Carousel{Nodes: make([]page.Node, n)}
	for i := range m.Nodes {
		m.Nodes[i].Opacity = 1
	}
	if active >= 0 {
		m.Nodes[active].Active = true
	}
	return m
}

func checkInvariant(t *testing.T, c *Carousel, m *page.Carousel) {
	t.Helper()
	visible := 0
	for i, n := range m.Nodes {
		if n.Visible {
			visible++
			if i != c.Index() {
				t.Fatalf("node %d visible but index is %d", i, c.Index())
			}
		}
	}
	if visible != 1 {
		t.Fatalf("%d nodes visible", visible)
	}
	active := 0
	for i, d := range m.Dots {
		if d.Active {
			active++
			if i != c.Index() {
				t.Fatalf("dot %d active but index is %d", i, c.Index())
			}
		}
	}
	if active != 1 || len(m.Dots) != len(m.Nodes) {
		t.Fatalf("dots=%d active=%d", len(m.Dots), active)
	}
	if m.PrevDisabled != (c.Index() == 0) || m.NextDisabled != (c.Index() == len(m.Nodes)-1) {
		t.Fatalf("controls prev=%v next=%v at %d", m.PrevDisabled, m.NextDisabled, c.Index())
	}
}

func TestNewRequiresMarkup(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNoCarousel) {
		t.Fatalf("err = %v", err)
	}
	if _, err := New(&page.Carousel{}, nil); !errors.Is(err, ErrNoCarousel) {
		t.Fatalf("err = %v", err)
	}
}

func TestStartsAtPreMarkedNode(t *testing.T) {
	m := markup(5, 2)
	c, err := New(m, tween.NewEngine())
	if err != nil {
		t.Fatal(err)
	}
	if c.Index() != 2 {
		t.Fatalf("index = %d", c.Index())
	}
	checkInvariant(t, c, m)
}

func TestNoActiveMarkerStartsAtZero(t *testing.T) {
	m := markup(3, -1)
	c, _ := New(m, nil)
	if c.Index() != 0 {
		t.Fatalf("index = %d", c.Index())
	}
	checkInvariant(t, c, m)
}

func TestFiveNodeWalk(t *testing.T) {
	m := markup(5, 0)
	c, _ := New(m, tween.NewEngine())

	c.Prev()
	if c.Index() != 0 {
		t.Fatalf("prev at start moved to %d", c.Index())
	}
	for i := 0; i < 4; i++ {
		c.Next()
		checkInvariant(t, c, m)
	}
	c.Next()
	if c.Index() != 4 || !m.NextDisabled {
		t.Fatalf("index=%d nextDisabled=%v", c.Index(), m.NextDisabled)
	}
	checkInvariant(t, c, m)
}

func TestGoToOutOfRangeIsIgnored(t *testing.T) {
	m := markup(4, 1)
	c, _ := New(m, nil)
	for _, i := range []int{-1, 4, 100} {
		c.GoTo(i)
		if c.Index() != 1 {
			t.Fatalf("GoTo(%d) moved to %d", i, c.Index())
		}
	}
	for i := 0; i < 4; i++ {
		c.GoTo(i)
		checkInvariant(t, c, m)
	}
}

func TestReinitRebuildsDots(t *testing.T) {
	m := markup(3, 0)
	c, _ := New(m, nil)
	c.GoTo(2)
	m.Dots = append(m.Dots, page.Dot{Active: true}, page.Dot{})

	again, err := New(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.Index() != 2 {
		t.Fatalf("re-init lost the active node: %d", again.Index())
	}
	checkInvariant(t, again, m)
}

func TestGoToFadesNodeIn(t *testing.T) {
	m := markup(3, 0)
	engine := tween.NewEngine()
	c, _ := New(m, engine)
	c.GoTo(1)
	if m.Nodes[1].Opacity != 0 {
		t.Fatalf("opacity = %v", m.Nodes[1].Opacity)
	}
	engine.Step(FadeDuration)
	if m.Nodes[1].Opacity != 1 {
		t.Fatalf("opacity after fade = %v", m.Nodes[1].Opacity)
	}
	c.GoTo(2)
	c.Release()
	if m.Nodes[2].Opacity != 1 || m.Nodes[1].Opacity != 1 {
		t.Fatal("release should land the fade")
	}
}

func TestBindRoutesClicksAndKeys(t *testing.T) {
	m := markup(5, 0)
	c, _ := New(m, nil)
	bus := event.NewBus(nil)
	c.Bind(bus)
	c.Bind(bus)
	if n := bus.Len(event.Click); n != 1 {
		t.Fatalf("click handlers = %d", n)
	}

	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.TargetNext})
	bus.Dispatch(event.Event{Topic: event.Key, Key: event.KeyRight})
	if c.Index() != 2 {
		t.Fatalf("index = %d", c.Index())
	}
	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.DotTarget(4)})
	if c.Index() != 4 {
		t.Fatalf("dot click index = %d", c.Index())
	}
	bus.Dispatch(event.Event{Topic: event.Key, Key: event.KeyLeft})
	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.TargetPrev})
	if c.Index() != 2 {
		t.Fatalf("index = %d", c.Index())
	}
	bus.Dispatch(event.Event{Topic: event.Click, Target: layout.DotTarget(9)})
	if c.Index() != 2 {
		t.Fatalf("out-of-range dot moved to %d", c.Index())
	}
	checkInvariant(t, c, m)
}
