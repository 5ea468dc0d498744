package editor

import (
	"notefield/engine"
	"notefield/score"
)

// Viewport maps canvas cells to (beat, cents) coordinates. Row 0 is the top
// of the canvas; pitch increases upward.
type Viewport struct {
	Cols, Rows  int
	LeftBeat    float64
	BeatsPerCol float64
	CenterCents float64 // cents at the vertical center row
	CentsPerRow float64
}

func DefaultViewport() Viewport {
	return Viewport{
		Cols:        72,
		Rows:        20,
		LeftBeat:    0,
		BeatsPerCol: 0.25,
		CenterCents: 0,
		CentsPerRow: 100,
	}
}

// BeatAt returns the beat at the left edge of column x.
func (v *Viewport) BeatAt(x int) float64 {
	return v.LeftBeat + float64(x)*v.BeatsPerCol
}

// CentsAt returns the pitch, in cents above base, at row y.
func (v *Viewport) CentsAt(y int) float64 {
	return v.CenterCents + float64(v.Rows/2-y)*v.CentsPerRow
}

// ColOf returns the column containing the given beat, which may be off-canvas.
func (v *Viewport) ColOf(beat float64) int {
	return int((beat - v.LeftBeat) / v.BeatsPerCol)
}

// RowOf returns the row nearest the given pitch, which may be off-canvas.
func (v *Viewport) RowOf(cents float64) int {
	steps := (cents - v.CenterCents) / v.CentsPerRow
	return v.Rows/2 - int(roundHalfAway(steps))
}

// Pan shifts the view by whole cells.
func (v *Viewport) Pan(dx, dy int) {
	v.LeftBeat += float64(dx) * v.BeatsPerCol
	if v.LeftBeat < 0 {
		v.LeftBeat = 0
	}
	v.CenterCents += float64(dy) * v.CentsPerRow
}

// Zoom scales beats per column by powers of two, clamped to a sane range.
func (v *Viewport) Zoom(in bool) {
	if in {
		if v.BeatsPerCol > 1.0/32 {
			v.BeatsPerCol /= 2
		}
	} else {
		if v.BeatsPerCol < 4 {
			v.BeatsPerCol *= 2
		}
	}
}

func roundHalfAway(f float64) float64 {
	if f < 0 {
		return -float64(int(-f + 0.5))
	}
	return float64(int(f + 0.5))
}

// Region classifies where on a note a pointer landed.
type Region int

const (
	RegionNone Region = iota
	RegionBody
	RegionLeftEdge
	RegionRightEdge
)

// HitTest finds the note under a canvas cell and which part of it was hit.
// Later notes win, matching draw order.
func (ed *Editor) HitTest(p engine.Point) (*score.Note, Region) {
	v := &ed.view
	if p.X < 0 || p.X >= v.Cols || p.Y < 0 || p.Y >= v.Rows {
		return nil, RegionNone
	}
	for i := len(ed.Score.Notes) - 1; i >= 0; i-- {
		n := ed.Score.Notes[i]
		if v.RowOf(n.Cents()) != p.Y {
			continue
		}
		c0 := v.ColOf(n.Start)
		c1 := v.ColOf(n.End()) - 1
		if c1 < c0 {
			c1 = c0
		}
		if p.X < c0 || p.X > c1 {
			continue
		}
		// Edge handles only exist once the note is wide enough to leave a
		// body cell between them.
		if c1-c0 >= 2 {
			if p.X == c0 {
				return n, RegionLeftEdge
			}
			if p.X == c1 {
				return n, RegionRightEdge
			}
		}
		return n, RegionBody
	}
	return nil, RegionNone
}
