package engine

// Handler reacts to one delivered event.
type Handler func(Event) Status

// Listener is a command's active waiting state: one optional handler per hook
// category. A nil handler means the command is not waiting on that hook.
// Listeners are replaced whole at every suspension, never mutated in place.
type Listener struct {
	KeyDown     Handler
	KeyUp       Handler
	PointerDown Handler
	PointerUp   Handler
	FrameTick   Handler
	Action      Handler
	Priority    int // action arbitration priority, higher wins
}

func (l *Listener) handler(h Hook) Handler {
	switch h {
	case KeyDown:
		return l.KeyDown
	case KeyUp:
		return l.KeyUp
	case PointerDown:
		return l.PointerDown
	case PointerUp:
		return l.PointerUp
	case FrameTick:
		return l.FrameTick
	case Action:
		return l.Action
	}
	return nil
}

// KeyListener waits for a key-down of the given code and consumes it, carrying
// the delivered event.
func KeyListener(code int) *Listener {
	return &Listener{
		KeyDown: func(ev Event) Status {
			if ev.Key != code {
				return Repeat()
			}
			return Consume(ev)
		},
	}
}

// PointerDownListener waits for any pointer press and consumes it, carrying
// the delivered event.
func PointerDownListener() *Listener {
	return &Listener{
		PointerDown: func(ev Event) Status {
			return Consume(ev)
		},
	}
}

// When wraps a listener so that a carried-value status is only honored if pred
// holds on its value; otherwise the wrapped handler reports Repeat. Repeat and
// Cancel pass through unchanged.
func When(pred func(any) bool, l *Listener) *Listener {
	wrap := func(h Handler) Handler {
		if h == nil {
			return nil
		}
		return func(ev Event) Status {
			st := h(ev)
			if st.carriesValue() && !pred(st.val) {
				return Repeat()
			}
			return st
		}
	}
	return &Listener{
		KeyDown:     wrap(l.KeyDown),
		KeyUp:       wrap(l.KeyUp),
		PointerDown: wrap(l.PointerDown),
		PointerUp:   wrap(l.PointerUp),
		FrameTick:   wrap(l.FrameTick),
		Action:      wrap(l.Action),
		Priority:    l.Priority,
	}
}
