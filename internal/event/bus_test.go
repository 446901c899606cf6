package event

import (
	"slices"
	"testing"
)

func TestSubscribeSupersedesSameOwner(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(Scroll, "reveal", func(Event) { calls++ })
	}
	if bus.Len(Scroll) != 1 {
		t.Fatalf("len = %d, want 1", bus.Len(Scroll))
	}
	if err := bus.Dispatch(Event{Topic: Scroll}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestDispatchOrderFollowsSubscription(t *testing.T) {
	bus := NewBus(nil)
	var order []string
	bus.Subscribe(Resize, "viewport", func(Event) { order = append(order, "viewport") })
	bus.Subscribe(Resize, "theme", func(Event) { order = append(order, "theme") })
	bus.Subscribe(Resize, "reveal", func(Event) { order = append(order, "reveal") })
	_ = bus.Dispatch(Event{Topic: Resize})
	if !slices.Equal(order, []string{"viewport", "theme", "reveal"}) {
		t.Fatalf("order = %v", order)
	}
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus(nil)
	ran := false
	bus.Subscribe(Click, "broken", func(Event) { panic("boom") })
	bus.Subscribe(Click, "carousel", func(Event) { ran = true })
	if err := bus.Dispatch(Event{Topic: Click}); err == nil {
		t.Fatal("expected an error summarizing the panic")
	}
	if !ran {
		t.Fatal("second handler did not run")
	}
}

func TestUnsubscribeOwner(t *testing.T) {
	bus := NewBus(nil)
	bus.Subscribe(Scroll, "theme", func(Event) {})
	bus.Subscribe(Resize, "theme", func(Event) {})
	bus.Subscribe(Scroll, "reveal", func(Event) {})
	bus.UnsubscribeOwner("theme")
	if bus.Len(Scroll) != 1 || bus.Len(Resize) != 0 {
		t.Fatalf("scroll=%d resize=%d", bus.Len(Scroll), bus.Len(Resize))
	}
}

func TestHandlerMayUnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	bus.Subscribe(Key, "once", func(Event) {
		calls++
		bus.UnsubscribeOwner("once")
	})
	_ = bus.Dispatch(Event{Topic: Key})
	_ = bus.Dispatch(Event{Topic: Key})
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}
