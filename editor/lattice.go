package editor

import (
	"math"
	"math/big"
)

// justScale is a 5-limit just major scale, one octave.
var justScale = []*big.Rat{
	big.NewRat(1, 1),
	big.NewRat(9, 8),
	big.NewRat(5, 4),
	big.NewRat(4, 3),
	big.NewRat(3, 2),
	big.NewRat(5, 3),
	big.NewRat(15, 8),
}

// Lattice maps canvas rows to exact pitch ratios. It starts in scale mode
// (repeating just scale, octave per cycle); the grid command switches it to a
// uniform step, powers of a single ratio.
type Lattice struct {
	scale []*big.Rat
	step  *big.Rat // nil in scale mode
}

func NewLattice() *Lattice {
	return &Lattice{scale: justScale}
}

// SetStep switches to uniform-step mode. A nil or unit step resets to scale
// mode.
func (l *Lattice) SetStep(step *big.Rat) {
	if step == nil || step.Cmp(big.NewRat(1, 1)) == 0 {
		l.step = nil
		return
	}
	l.step = new(big.Rat).Set(step)
}

// Step returns the uniform step, or nil in scale mode.
func (l *Lattice) Step() *big.Rat {
	if l.step == nil {
		return nil
	}
	return new(big.Rat).Set(l.step)
}

// RatioAt returns the pitch k steps above the base.
func (l *Lattice) RatioAt(k int) *big.Rat {
	if l.step != nil {
		return ratPow(l.step, k)
	}
	n := len(l.scale)
	oct := k / n
	idx := k % n
	if idx < 0 {
		idx += n
		oct--
	}
	r := new(big.Rat).Set(l.scale[idx])
	return r.Mul(r, ratPow(big.NewRat(2, 1), oct))
}

// StepsFor returns the lattice step nearest to the given cents above base.
func (l *Lattice) StepsFor(cents float64) int {
	if l.step != nil {
		f, _ := l.step.Float64()
		stepCents := 1200 * math.Log2(f)
		if stepCents == 0 {
			return 0
		}
		return int(math.Round(cents / stepCents))
	}

	n := len(l.scale)
	oct := int(math.Floor(cents / 1200))
	within := cents - float64(oct)*1200

	bestK := oct * n
	bestDist := math.Inf(1)
	// Check this octave's degrees plus the next octave's base.
	for i := 0; i <= n; i++ {
		var c float64
		if i == n {
			c = 1200
		} else {
			f, _ := l.scale[i].Float64()
			c = 1200 * math.Log2(f)
		}
		if d := math.Abs(within - c); d < bestDist {
			bestDist = d
			bestK = oct*n + i
		}
	}
	return bestK
}

// Transpose moves a pitch by k lattice steps (multiplicative).
func (l *Lattice) Transpose(pitch *big.Rat, k int) *big.Rat {
	r := new(big.Rat).Set(pitch)
	return r.Mul(r, l.RatioAt(k))
}

// ratPow raises r to an integer power, negative exponents inverting.
func ratPow(r *big.Rat, k int) *big.Rat {
	out := big.NewRat(1, 1)
	base := new(big.Rat).Set(r)
	if k < 0 {
		base.Inv(base)
		k = -k
	}
	for i := 0; i < k; i++ {
		out.Mul(out, base)
	}
	return out
}
