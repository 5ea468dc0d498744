package audio

import (
	"math"
	"math/big"
)

// Tuning maps exact pitch ratios onto the MIDI note + pitch-bend wire format.
type Tuning struct {
	Base      float64 // frequency of ratio 1/1, in Hz
	BendRange float64 // synth pitch-bend range in semitones, per direction
}

// DefaultTuning is middle C at just ratio 1/1 with the common ±2 semitone
// bend range.
func DefaultTuning() Tuning {
	return Tuning{Base: 261.625565, BendRange: 2}
}

// NoteAndBend converts a pitch ratio into the nearest MIDI note plus the
// 14-bit bend offset that lands exactly on the ratio's frequency.
func (t Tuning) NoteAndBend(ratio *big.Rat) (note uint8, bend int16) {
	f, _ := ratio.Float64()
	freq := t.Base * f
	semis := 69 + 12*math.Log2(freq/440)

	nearest := math.Round(semis)
	if nearest < 0 {
		nearest = 0
	}
	if nearest > 127 {
		nearest = 127
	}

	delta := semis - nearest // in [-0.5, 0.5] unless clamped
	b := math.Round(delta / t.BendRange * 8192)
	if b > 8191 {
		b = 8191
	}
	if b < -8192 {
		b = -8192
	}
	return uint8(nearest), int16(b)
}
