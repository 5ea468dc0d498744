// Package editor holds the note canvas state and the command bodies that
// mutate it. Commands are registered on an engine.Runner and express each
// interaction (drag to create, drag a handle to resize, box-select, duplicate
// and drop, ...) as straight-line procedures; audio work is enqueued on a
// schedule.Scheduler.
package editor

import (
	"math/big"

	"notefield/audio"
	"notefield/engine"
	"notefield/schedule"
	"notefield/score"
)

// Sounder is the audio backend boundary: logical note on/off keyed by voice
// id.
type Sounder interface {
	NoteOn(id int, ratio *big.Rat, velocity uint8)
	NoteOff(id int)
	AllOff()
}

// Options configure a new editor session.
type Options struct {
	Tempo      int
	TimeGrid   float64 // beats
	Resolution float64 // scheduler tick, seconds
}

// Editor is the session state shared by all command bodies. Everything runs
// on the host event-loop thread.
type Editor struct {
	Score *score.Score
	sel   map[*score.Note]bool

	TimeGrid float64
	lattice  *Lattice
	Tempo    int

	view Viewport

	pointer engine.Point
	shift   bool

	// in-flight interaction state, owned by the command that set it and
	// reset at each procedure's top so an abandoned activation leaves no
	// residue
	pending     *score.Note
	ghost       []*score.Note
	ghostDBeat  float64
	ghostDSteps int
	band        *band

	sounder    Sounder
	clock      *audio.Clock
	sched      *schedule.Scheduler
	playing    bool
	resolution float64

	docName string
	dirty   bool
	status  string
}

type band struct {
	beat0, beat1   float64
	cents0, cents1 float64
}

func New(sounder Sounder, clock *audio.Clock, opts Options) *Editor {
	if opts.Tempo == 0 {
		opts.Tempo = 120
	}
	if opts.TimeGrid == 0 {
		opts.TimeGrid = 0.25
	}
	if opts.Resolution == 0 {
		opts.Resolution = 0.01
	}
	return &Editor{
		Score:      score.New(),
		sel:        make(map[*score.Note]bool),
		TimeGrid:   opts.TimeGrid,
		lattice:    NewLattice(),
		Tempo:      opts.Tempo,
		view:       DefaultViewport(),
		sounder:    sounder,
		clock:      clock,
		resolution: opts.Resolution,
	}
}

// Selection

func (ed *Editor) Selected(n *score.Note) bool { return ed.sel[n] }

func (ed *Editor) SelectionCount() int { return len(ed.sel) }

func (ed *Editor) Selection() []*score.Note {
	var out []*score.Note
	for _, n := range ed.Score.Sorted() {
		if ed.sel[n] {
			out = append(out, n)
		}
	}
	return out
}

func (ed *Editor) selectOnly(notes ...*score.Note) {
	ed.sel = make(map[*score.Note]bool, len(notes))
	for _, n := range notes {
		ed.sel[n] = true
	}
}

func (ed *Editor) clearSelection() {
	ed.sel = make(map[*score.Note]bool)
}

// Input state mirrored from the host

// SetPointer records the current hover cell; frame ticks carry it to commands.
func (ed *Editor) SetPointer(p engine.Point) { ed.pointer = p }

func (ed *Editor) Pointer() engine.Point { return ed.pointer }

// SetShift records whether shift is held, for When-gated commands.
func (ed *Editor) SetShift(held bool) { ed.shift = held }

// View access for the host

func (ed *Editor) Viewport() *Viewport { return &ed.view }

func (ed *Editor) Dirty() bool { return ed.dirty }

func (ed *Editor) DocName() string { return ed.docName }

// Status returns the current status line message.
func (ed *Editor) Status() string { return ed.status }

func (ed *Editor) setStatus(s string) { ed.status = s }

func (ed *Editor) snapBeat(beat float64) float64 {
	b := score.Snap(beat, ed.TimeGrid)
	if b < 0 {
		b = 0
	}
	return b
}

// pitchAt converts a canvas row to the nearest lattice pitch.
func (ed *Editor) pitchAt(y int) *big.Rat {
	return ed.lattice.RatioAt(ed.lattice.StepsFor(ed.view.CentsAt(y)))
}

// SetGridFromSelection sets the pitch lattice step to the greatest common
// divisor of the selected pitches.
func (ed *Editor) SetGridFromSelection() {
	sel := ed.Selection()
	if len(sel) == 0 {
		ed.setStatus("grid: nothing selected")
		return
	}
	g := score.CommonDivisor(sel)
	ed.lattice.SetStep(g)
	ed.setStatus("grid " + g.RatString())
}

// PitchGrid returns the current uniform lattice step, or nil in scale mode.
func (ed *Editor) PitchGrid() *big.Rat { return ed.lattice.Step() }
