package editor

import (
	"math/big"

	"notefield/debug"
	"notefield/engine"
	"notefield/score"
)

// Continuous drags contend for the per-frame action slot above one-shot
// effects, so an in-flight drag starves queued keys rather than interleaving
// with them.
const (
	effectPriority = 0
	dragPriority   = 1
)

// RegisterCommands wires every interaction onto the runner. Registration
// order doubles as hit-test precedence for pointer commands: edge handles
// before bodies before empty canvas.
func RegisterCommands(r *engine.Runner, ed *Editor) {
	// duplicate goes first: while its ghost is in flight, its drop listener
	// must win the pointer press ahead of the other pointer commands.
	r.Register("d: duplicate selection, click to drop", "notes", ed.duplicate)
	r.Register("drag a note's edge to resize it", "notes", ed.resizeNote)
	r.Register("drag a note to move it", "notes", ed.moveNote)
	r.Register("drag on empty canvas to create a note", "notes", ed.createNote)
	r.Register("shift-drag to box-select", "selection", ed.boxSelect)
	r.Register("g: set pitch grid to selection's common divisor", "grid", ed.gridFromSelection)
	r.Register("backspace: delete selection", "notes", ed.deleteSelection)
	r.Register("y: yank selection to clipboard", "clipboard", ed.yank)
	r.Register("p: paste at pointer", "clipboard", ed.paste)
	r.Register("space: toggle playback", "transport", ed.playToggle)
	r.Register("w: write document", "document", ed.write)
	r.Register("esc: clear selection", engine.HiddenCategory, ed.escapeClear)
}

// Pointer predicates. Each gates on the carried pointer-down event, so the
// first matching command in registration order consumes the press.

func (ed *Editor) hitsEdge(v any) bool {
	ev := v.(engine.Event)
	if ed.shift {
		return false
	}
	_, reg := ed.HitTest(ev.Pos)
	return reg == RegionLeftEdge || reg == RegionRightEdge
}

func (ed *Editor) hitsBody(v any) bool {
	ev := v.(engine.Event)
	if ed.shift {
		return false
	}
	_, reg := ed.HitTest(ev.Pos)
	return reg == RegionBody
}

func (ed *Editor) hitsEmpty(v any) bool {
	ev := v.(engine.Event)
	if ed.shift {
		return false
	}
	_, reg := ed.HitTest(ev.Pos)
	return reg == RegionNone
}

func (ed *Editor) shiftHeld(any) bool { return ed.shift }

// dragUntilRelease suspends on a drag listener: each frame the action slot
// applies step to the current pointer, and the pointer release resumes the
// procedure. Losing the action contention restarts the calling command.
func dragUntilRelease(ctx *engine.Context, step func(engine.Event)) engine.Event {
	v := ctx.Listen(&engine.Listener{
		Priority: dragPriority,
		Action: func(ev engine.Event) engine.Status {
			step(ev)
			return engine.Proceed(nil)
		},
		PointerUp: func(ev engine.Event) engine.Status {
			return engine.Consume(ev)
		},
	})
	return v.(engine.Event)
}

// createNote: press on empty canvas, drag out the duration, release commits.
func (ed *Editor) createNote(ctx *engine.Context) {
	ed.pending = nil

	v := ctx.Listen(engine.When(ed.hitsEmpty, engine.PointerDownListener()))
	ev := v.(engine.Event)

	start := ed.snapBeat(ed.view.BeatAt(ev.Pos.X))
	ed.pending = score.NewNote(start, ed.TimeGrid, ed.pitchAt(ev.Pos.Y))

	dragUntilRelease(ctx, func(ev engine.Event) {
		end := ed.snapBeat(ed.view.BeatAt(ev.Pos.X) + ed.view.BeatsPerCol)
		if end-start >= ed.TimeGrid {
			ed.pending.Duration = end - start
		}
		ed.pending.Pitch = ed.pitchAt(ev.Pos.Y)
	})

	n := ed.pending
	ed.pending = nil
	ed.Score.Add(n)
	ed.selectOnly(n)
	ed.dirty = true
	debug.Log("edit", "created note %.3f+%.3f %s", n.Start, n.Duration, n.Pitch.RatString())
}

// moveNote: press on a note body, drag the whole selection, release snaps.
func (ed *Editor) moveNote(ctx *engine.Context) {
	v := ctx.Listen(engine.When(ed.hitsBody, engine.PointerDownListener()))
	ev := v.(engine.Event)

	n, _ := ed.HitTest(ev.Pos)
	if n == nil {
		return
	}
	if !ed.sel[n] {
		ed.selectOnly(n)
	}

	grab := ed.view.BeatAt(ev.Pos.X) - n.Start
	grabSteps := ed.lattice.StepsFor(ed.view.CentsAt(ev.Pos.Y))

	type origin struct {
		start float64
		pitch *big.Rat
	}
	origins := make(map[*score.Note]origin, len(ed.sel))
	for m := range ed.sel {
		origins[m] = origin{start: m.Start, pitch: new(big.Rat).Set(m.Pitch)}
	}
	base := origins[n]

	dragUntilRelease(ctx, func(ev engine.Event) {
		dBeat := ed.snapBeat(ed.view.BeatAt(ev.Pos.X)-grab) - base.start
		dSteps := ed.lattice.StepsFor(ed.view.CentsAt(ev.Pos.Y)) - grabSteps
		for m, o := range origins {
			s := o.start + dBeat
			if s < 0 {
				s = 0
			}
			m.Start = s
			m.Pitch = ed.lattice.Transpose(o.pitch, dSteps)
		}
	})

	ed.dirty = true
}

// resizeNote: press on a note's edge handle, drag the boundary, release snaps.
func (ed *Editor) resizeNote(ctx *engine.Context) {
	v := ctx.Listen(engine.When(ed.hitsEdge, engine.PointerDownListener()))
	ev := v.(engine.Event)

	n, reg := ed.HitTest(ev.Pos)
	if n == nil {
		return
	}
	ed.selectOnly(n)
	end := n.End()

	dragUntilRelease(ctx, func(ev engine.Event) {
		b := ed.snapBeat(ed.view.BeatAt(ev.Pos.X))
		if reg == RegionRightEdge {
			if b-n.Start >= ed.TimeGrid {
				n.Duration = b - n.Start
			}
		} else {
			if end-b >= ed.TimeGrid && b >= 0 {
				n.Start = b
				n.Duration = end - b
			}
		}
	})

	ed.dirty = true
}

// boxSelect: shift-press anywhere, drag the rubber band, release selects.
func (ed *Editor) boxSelect(ctx *engine.Context) {
	ed.band = nil

	v := ctx.Listen(engine.When(ed.shiftHeld, engine.PointerDownListener()))
	ev := v.(engine.Event)

	b0 := ed.view.BeatAt(ev.Pos.X)
	c0 := ed.view.CentsAt(ev.Pos.Y)
	ed.band = &band{beat0: b0, beat1: b0, cents0: c0, cents1: c0}

	dragUntilRelease(ctx, func(ev engine.Event) {
		ed.band.beat1 = ed.view.BeatAt(ev.Pos.X)
		ed.band.cents1 = ed.view.CentsAt(ev.Pos.Y)
	})

	covered := ed.Score.Between(ed.band.beat0, ed.band.beat1, ed.band.cents0, ed.band.cents1)
	ed.band = nil
	ed.selectOnly(covered...)
}

// duplicate: d clones the selection, the ghost follows the pointer, and the
// next pointer press drops it.
func (ed *Editor) duplicate(ctx *engine.Context) {
	ed.ghost = nil
	ed.ghostDBeat = 0
	ed.ghostDSteps = 0

	ctx.Key('d')
	sel := ed.Selection()
	if len(sel) == 0 {
		return
	}

	clones := make([]*score.Note, len(sel))
	for i, n := range sel {
		clones[i] = n.Clone()
	}
	anchor := clones[0]
	grabSteps := ed.lattice.StepsFor(anchor.Cents())
	ed.ghost = clones

	v := ctx.Listen(&engine.Listener{
		Priority: dragPriority,
		Action: func(ev engine.Event) engine.Status {
			ed.ghostDBeat = ed.snapBeat(ed.view.BeatAt(ev.Pos.X)) - anchor.Start
			ed.ghostDSteps = ed.lattice.StepsFor(ed.view.CentsAt(ev.Pos.Y)) - grabSteps
			return engine.Proceed(nil)
		},
		PointerDown: func(ev engine.Event) engine.Status {
			return engine.Consume(ev)
		},
	})
	_ = v.(engine.Event)

	for _, c := range clones {
		s := c.Start + ed.ghostDBeat
		if s < 0 {
			s = 0
		}
		c.Start = s
		c.Pitch = ed.lattice.Transpose(c.Pitch, ed.ghostDSteps)
		ed.Score.Add(c)
	}
	ed.ghost = nil
	ed.selectOnly(clones...)
	ed.dirty = true
}

func (ed *Editor) gridFromSelection(ctx *engine.Context) {
	ctx.Key('g')
	ctx.Action(func(engine.Event) any {
		ed.SetGridFromSelection()
		return nil
	}, effectPriority)
}

func (ed *Editor) deleteSelection(ctx *engine.Context) {
	ctx.Key(KeyBackspace)
	ctx.Action(func(engine.Event) any {
		if len(ed.sel) == 0 {
			return nil
		}
		ed.Score.Remove(ed.sel)
		ed.clearSelection()
		ed.dirty = true
		return nil
	}, effectPriority)
}

func (ed *Editor) yank(ctx *engine.Context) {
	ctx.Key('y')
	ctx.Action(func(engine.Event) any {
		ed.yankSelection()
		return nil
	}, effectPriority)
}

func (ed *Editor) paste(ctx *engine.Context) {
	ctx.Key('p')
	ctx.Action(func(engine.Event) any {
		ed.pasteAtPointer()
		return nil
	}, effectPriority)
}

func (ed *Editor) playToggle(ctx *engine.Context) {
	ctx.Key(KeySpace)
	ctx.Action(func(engine.Event) any {
		ed.TogglePlayback()
		return nil
	}, effectPriority)
}

func (ed *Editor) write(ctx *engine.Context) {
	ctx.Key('w')
	ctx.Action(func(engine.Event) any {
		ed.WriteDocument()
		return nil
	}, effectPriority)
}

func (ed *Editor) escapeClear(ctx *engine.Context) {
	ctx.Key(KeyEscape)
	ctx.Action(func(engine.Event) any {
		ed.clearSelection()
		return nil
	}, effectPriority)
}
