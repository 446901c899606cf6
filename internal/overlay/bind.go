package overlay

import (
	"errors"

	"scroll-scene/internal/event"
	"scroll-scene/internal/layout"
)

// Owner is the bus owner name used by Bind.
const Owner = "overlay"

// Bind routes the swap button, the back control, Escape and the gallery card
// pointer events to s. The handlers stay bound across page re-inits and
// check the state themselves.
func (s *Swap) Bind(bus *event.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(event.Click, Owner, func(ev event.Event) {
		switch s.state {
		case StateNormal:
			if ev.Target == layout.TargetSwap {
				s.report(s.SwapIn())
			}
		case StateOverlay:
			if ev.Target == layout.TargetBack {
				s.report(s.SwapOut())
				return
			}
			if i, ok := layout.CardIndex(ev.Target); ok {
				s.Toggle(i)
			}
		}
	})
	bus.Subscribe(event.PointerMove, Owner, func(ev event.Event) {
		if s.state != StateOverlay {
			return
		}
		i, ok := layout.CardIndex(ev.Target)
		if !ok {
			i = -1
		}
		s.Hover(i)
	})
	bus.Subscribe(event.Key, Owner, func(ev event.Event) {
		if ev.Key == event.KeyEscape && s.state == StateOverlay {
			s.report(s.SwapOut())
		}
	})
}

func (s *Swap) report(err error) {
	if err == nil || s.log == nil {
		return
	}
	if errors.Is(err, ErrAlreadySwapped) || errors.Is(err, ErrNotSwapped) {
		s.log.Printf("swap ignored: %v", err)
		return
	}
	s.log.Printf("swap: %v", err)
}
