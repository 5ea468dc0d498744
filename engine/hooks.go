package engine

import "fmt"

// Hook identifies one of the fixed moments in the host event loop at which a
// command may react.
type Hook int

const (
	KeyDown Hook = iota
	KeyUp
	PointerDown
	PointerUp
	FrameTick
	// Action is the per-frame, priority-arbitrated mutation slot. It is
	// resolved automatically after every dispatch; passing it to Dispatch
	// directly is a programmer error.
	Action
)

func (h Hook) String() string {
	switch h {
	case KeyDown:
		return "keyDown"
	case KeyUp:
		return "keyUp"
	case PointerDown:
		return "pointerDown"
	case PointerUp:
		return "pointerUp"
	case FrameTick:
		return "frameTick"
	case Action:
		return "action"
	}
	return fmt.Sprintf("Hook(%d)", int(h))
}

// Point is a canvas cell position.
type Point struct {
	X, Y int
}

// Event is one raw input delivery.
type Event struct {
	Hook Hook
	Key  int     // key code, valid for KeyDown/KeyUp
	Pos  Point   // pointer position; on FrameTick this is the current hover cell
	Time float64 // host time in seconds
}
