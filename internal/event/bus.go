// Package event routes input and viewport events to the page components.
package event

import (
	"fmt"
	"log"
	"sort"
)

// Topic names an event stream.
type Topic string

const (
	Scroll      Topic = "scroll"
	Resize      Topic = "resize"
	PointerMove Topic = "pointermove"
	Click       Topic = "click"
	Key         Topic = "key"
)

// Key names carried by Key events.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEscape = "Escape"
	KeyHome   = "Home"
)

// Event is the payload handed to subscribers. Only the fields relevant to
// the topic are set.
type Event struct {
	Topic Topic

	// Scroll and Resize.
	ScrollY        float64
	ViewportWidth  int
	ViewportHeight int

	// PointerMove and Click. Target is the hit-tested element id, empty
	// when the pointer is over nothing interactive.
	X, Y   float64
	Target string
	LocalX float64
	LocalY float64

	// Key.
	Key string
}

// Handler reacts to one event.
type Handler func(Event)

// Bus delivers events to subscribers in subscription order. Each owner holds
// at most one handler per topic: subscribing again replaces the old handler,
// which keeps repeated initialization from stacking duplicates.
type Bus struct {
	log    *log.Logger
	seq    uint64
	topics map[Topic]map[string]slot
}

type slot struct {
	seq uint64
	fn  Handler
}

// NewBus returns an empty bus. A nil logger discards handler failures.
func NewBus(logger *log.Logger) *Bus {
	return &Bus{log: logger, topics: map[Topic]map[string]slot{}}
}

// Subscribe installs fn as owner's handler for topic.
func (b *Bus) Subscribe(topic Topic, owner string, fn Handler) {
	if b == nil || fn == nil || owner == "" {
		return
	}
	slots, ok := b.topics[topic]
	if !ok {
		slots = map[string]slot{}
		b.topics[topic] = slots
	}
	b.seq++
	slots[owner] = slot{seq: b.seq, fn: fn}
}

// UnsubscribeOwner removes every handler owner holds.
func (b *Bus) UnsubscribeOwner(owner string) {
	if b == nil {
		return
	}
	for _, slots := range b.topics {
		delete(slots, owner)
	}
}

// Len counts handlers on topic.
func (b *Bus) Len(topic Topic) int {
	if b == nil {
		return 0
	}
	return len(b.topics[topic])
}

// Dispatch calls every handler for ev.Topic. A handler that panics is logged
// and skipped; the remaining handlers still run. The returned error
// summarizes failures for callers that care.
func (b *Bus) Dispatch(ev Event) error {
	if b == nil {
		return nil
	}
	slots := b.topics[ev.Topic]
	if len(slots) == 0 {
		return nil
	}
	// Snapshot first: handlers may subscribe or unsubscribe while running.
	ordered := make([]slot, 0, len(slots))
	owners := make(map[uint64]string, len(slots))
	for owner, s := range slots {
		ordered = append(ordered, s)
		owners[s.seq] = owner
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	var failed []string
	for _, s := range ordered {
		if err := b.call(s.fn, ev); err != nil {
			owner := owners[s.seq]
			failed = append(failed, owner)
			if b.log != nil {
				b.log.Printf("%s handler %q: %v", ev.Topic, owner, err)
			}
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%s: %d handler(s) failed: %v", ev.Topic, len(failed), failed)
	}
	return nil
}

func (b *Bus) call(fn Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn(ev)
	return nil
}
