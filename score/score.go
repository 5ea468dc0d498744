// Package score is the document model: notes with exact rational pitches laid
// out on a beat timeline, plus the grid arithmetic the editor snaps against.
package score

import (
	"math"
	"math/big"
	"sort"
)

// Score holds the notes of one document.
type Score struct {
	Notes  []*Note
	Length float64 // beats
}

func New() *Score {
	return &Score{Length: 16}
}

// Add inserts a note, extending the score if it runs past the end.
func (s *Score) Add(n *Note) {
	s.Notes = append(s.Notes, n)
	if n.End() > s.Length {
		s.Length = math.Ceil(n.End())
	}
}

// Remove drops every note in the given set.
func (s *Score) Remove(set map[*Note]bool) {
	if len(set) == 0 {
		return
	}
	kept := s.Notes[:0]
	for _, n := range s.Notes {
		if !set[n] {
			kept = append(kept, n)
		}
	}
	s.Notes = kept
}

// Sorted returns the notes ordered by start beat, then pitch.
func (s *Score) Sorted() []*Note {
	out := make([]*Note, len(s.Notes))
	copy(out, s.Notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Pitch.Cmp(out[j].Pitch) < 0
	})
	return out
}

// At returns the topmost note covering the given beat whose pitch lies within
// tolCents of cents, or nil. Later notes win, matching draw order.
func (s *Score) At(beat, cents, tolCents float64) *Note {
	for i := len(s.Notes) - 1; i >= 0; i-- {
		n := s.Notes[i]
		if beat < n.Start || beat >= n.End() {
			continue
		}
		if math.Abs(n.Cents()-cents) <= tolCents {
			return n
		}
	}
	return nil
}

// Between returns the notes whose span intersects [beat0,beat1] and whose
// pitch lies in [cent0,cent1]. Bounds may be given in either order.
func (s *Score) Between(beat0, beat1, cent0, cent1 float64) []*Note {
	if beat1 < beat0 {
		beat0, beat1 = beat1, beat0
	}
	if cent1 < cent0 {
		cent0, cent1 = cent1, cent0
	}
	var out []*Note
	for _, n := range s.Notes {
		if n.End() < beat0 || n.Start > beat1 {
			continue
		}
		c := n.Cents()
		if c < cent0 || c > cent1 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Snap rounds a beat to the nearest multiple of the time grid.
func Snap(beat, grid float64) float64 {
	if grid <= 0 {
		return beat
	}
	return math.Round(beat/grid) * grid
}

// RatGCD returns the greatest rational dividing both a and b an integral
// number of times: gcd(n1/d1, n2/d2) = gcd(n1*d2, n2*d1) / (d1*d2).
func RatGCD(a, b *big.Rat) *big.Rat {
	num := new(big.Int).GCD(nil, nil,
		new(big.Int).Mul(a.Num(), b.Denom()),
		new(big.Int).Mul(b.Num(), a.Denom()))
	den := new(big.Int).Mul(a.Denom(), b.Denom())
	return new(big.Rat).SetFrac(num, den)
}

// CommonDivisor returns the greatest rational dividing every selected pitch,
// or nil for an empty selection. This is what the grid command quantizes to.
func CommonDivisor(notes []*Note) *big.Rat {
	var g *big.Rat
	for _, n := range notes {
		if g == nil {
			g = new(big.Rat).Set(n.Pitch)
			continue
		}
		g = RatGCD(g, n.Pitch)
	}
	return g
}
