package score

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// Note is one drawn note: a start/duration span in beats and an exact pitch
// ratio relative to the tuning base.
type Note struct {
	Start    float64
	Duration float64
	Pitch    *big.Rat
	Velocity uint8
}

// NewNote creates a note with the default velocity.
func NewNote(start, duration float64, pitch *big.Rat) *Note {
	return &Note{
		Start:    start,
		Duration: duration,
		Pitch:    pitch,
		Velocity: 100,
	}
}

// End returns the beat at which the note stops sounding.
func (n *Note) End() float64 { return n.Start + n.Duration }

// Cents returns the pitch as cents above the tuning base.
func (n *Note) Cents() float64 {
	f, _ := n.Pitch.Float64()
	return 1200 * math.Log2(f)
}

// Clone returns a deep copy.
func (n *Note) Clone() *Note {
	return &Note{
		Start:    n.Start,
		Duration: n.Duration,
		Pitch:    new(big.Rat).Set(n.Pitch),
		Velocity: n.Velocity,
	}
}

// noteJSON is the wire shape: the pitch ratio travels as "n/d".
type noteJSON struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Pitch    string  `json:"pitch"`
	Velocity uint8   `json:"velocity"`
}

func (n *Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(noteJSON{
		Start:    n.Start,
		Duration: n.Duration,
		Pitch:    n.Pitch.RatString(),
		Velocity: n.Velocity,
	})
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var raw noteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pitch, ok := new(big.Rat).SetString(raw.Pitch)
	if !ok {
		return fmt.Errorf("score: bad pitch ratio %q", raw.Pitch)
	}
	if pitch.Sign() <= 0 {
		return fmt.Errorf("score: pitch ratio %q is not positive", raw.Pitch)
	}
	n.Start = raw.Start
	n.Duration = raw.Duration
	n.Pitch = pitch
	n.Velocity = raw.Velocity
	return nil
}
