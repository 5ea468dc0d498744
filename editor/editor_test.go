package editor

import (
	"math/big"
	"testing"

	"notefield/audio"
	"notefield/engine"
	"notefield/score"
)

// fakeSounder records note on/off calls in order.
type fakeSounder struct {
	ons     []int
	offs    []int
	allOffs int
}

func (f *fakeSounder) NoteOn(id int, ratio *big.Rat, velocity uint8) { f.ons = append(f.ons, id) }
func (f *fakeSounder) NoteOff(id int)                               { f.offs = append(f.offs, id) }
func (f *fakeSounder) AllOff()                                      { f.allOffs++ }

func newTestEditor(t *testing.T) (*engine.Runner, *Editor, *fakeSounder) {
	t.Helper()
	fs := &fakeSounder{}
	ed := New(fs, audio.NewClock(), Options{})
	r := engine.NewRunner()
	RegisterCommands(r, ed)
	return r, ed, fs
}

func press(r *engine.Runner, ed *Editor, x, y int) {
	p := engine.Point{X: x, Y: y}
	ed.SetPointer(p)
	r.Dispatch(engine.Event{Hook: engine.PointerDown, Pos: p})
}

func drag(r *engine.Runner, ed *Editor, x, y int) {
	p := engine.Point{X: x, Y: y}
	ed.SetPointer(p)
	r.Dispatch(engine.Event{Hook: engine.FrameTick, Pos: p})
}

func release(r *engine.Runner, ed *Editor, x, y int) {
	p := engine.Point{X: x, Y: y}
	ed.SetPointer(p)
	r.Dispatch(engine.Event{Hook: engine.PointerUp, Pos: p})
}

func key(r *engine.Runner, ed *Editor, code int) {
	r.Dispatch(engine.Event{Hook: engine.KeyDown, Key: code, Pos: ed.Pointer()})
	// One-shot key effects run on the following frame's action slot.
	r.Dispatch(engine.Event{Hook: engine.FrameTick, Pos: ed.Pointer()})
}

// The default viewport is 72x20 with 0.25 beats per column and 100 cents per
// row, base pitch on row 10. Column x sits at beat x/4, row y at (10-y)*100
// cents.

func TestDragCreatesSnappedNote(t *testing.T) {
	r, ed, _ := newTestEditor(t)

	press(r, ed, 10, 10)
	drag(r, ed, 14, 10)
	release(r, ed, 14, 10)

	if len(ed.Score.Notes) != 1 {
		t.Fatalf("%d notes after drag-create, want 1", len(ed.Score.Notes))
	}
	n := ed.Score.Notes[0]
	if n.Start != 2.5 || n.Duration != 1.25 {
		t.Fatalf("note span = %v+%v, want 2.5+1.25", n.Start, n.Duration)
	}
	if n.Pitch.Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("pitch = %s, want 1/1", n.Pitch.RatString())
	}
	if !ed.Selected(n) {
		t.Fatalf("created note must end up selected")
	}
	if !ed.Dirty() {
		t.Fatalf("creating a note must mark the session dirty")
	}
}

func TestClickWithoutDragCreatesGridLengthNote(t *testing.T) {
	r, ed, _ := newTestEditor(t)

	press(r, ed, 10, 10)
	release(r, ed, 10, 10)

	if len(ed.Score.Notes) != 1 {
		t.Fatalf("%d notes, want 1", len(ed.Score.Notes))
	}
	if d := ed.Score.Notes[0].Duration; d != ed.TimeGrid {
		t.Fatalf("duration = %v, want one grid unit %v", d, ed.TimeGrid)
	}
}

func TestDragBodyMovesSelectionOnLattice(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	n := score.NewNote(2.5, 1.25, big.NewRat(1, 1)) // cols 10..14, row 10
	ed.Score.Add(n)

	press(r, ed, 12, 10) // body cell
	drag(r, ed, 16, 8)   // +1 beat right, 200 cents up
	release(r, ed, 16, 8)

	if n.Start != 3.5 {
		t.Fatalf("start = %v, want 3.5", n.Start)
	}
	if n.Pitch.Cmp(big.NewRat(9, 8)) != 0 {
		t.Fatalf("pitch = %s, want one scale degree up (9/8)", n.Pitch.RatString())
	}
}

func TestDragRightEdgeResizes(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	n := score.NewNote(2.5, 1.25, big.NewRat(1, 1)) // right edge col 14
	ed.Score.Add(n)

	press(r, ed, 14, 10)
	drag(r, ed, 18, 10)
	release(r, ed, 18, 10)

	if n.Start != 2.5 || n.Duration != 2.0 {
		t.Fatalf("span = %v+%v, want 2.5+2.0", n.Start, n.Duration)
	}
}

func TestDragLeftEdgeKeepsEndFixed(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	n := score.NewNote(2.5, 1.25, big.NewRat(1, 1)) // left edge col 10
	ed.Score.Add(n)

	press(r, ed, 10, 10)
	drag(r, ed, 8, 10)
	release(r, ed, 8, 10)

	if n.Start != 2.0 || n.End() != 3.75 {
		t.Fatalf("span = [%v, %v], want [2.0, 3.75]", n.Start, n.End())
	}
}

func TestShiftDragBoxSelects(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	in := score.NewNote(2.5, 1.25, big.NewRat(1, 1))
	out := score.NewNote(10, 1, big.NewRat(1, 1))
	ed.Score.Add(in)
	ed.Score.Add(out)

	ed.SetShift(true)
	press(r, ed, 8, 8)
	drag(r, ed, 16, 12)
	release(r, ed, 16, 12)
	ed.SetShift(false)

	if ed.SelectionCount() != 1 || !ed.Selected(in) {
		t.Fatalf("selection = %d notes, want exactly the covered note", ed.SelectionCount())
	}
	if len(ed.Score.Notes) != 2 {
		t.Fatalf("shift-drag must not create notes, have %d", len(ed.Score.Notes))
	}
}

func TestBackspaceDeletesSelection(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	n := score.NewNote(1, 1, big.NewRat(1, 1))
	ed.Score.Add(n)
	ed.selectOnly(n)

	key(r, ed, KeyBackspace)

	if len(ed.Score.Notes) != 0 {
		t.Fatalf("%d notes after delete, want 0", len(ed.Score.Notes))
	}
	if ed.SelectionCount() != 0 {
		t.Fatalf("selection must clear with the deleted notes")
	}
}

func TestEscapeClearsSelection(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	n := score.NewNote(1, 1, big.NewRat(1, 1))
	ed.Score.Add(n)
	ed.selectOnly(n)

	key(r, ed, KeyEscape)

	if ed.SelectionCount() != 0 {
		t.Fatalf("selection = %d after escape, want 0", ed.SelectionCount())
	}
	if len(ed.Score.Notes) != 1 {
		t.Fatalf("escape must not delete notes")
	}
}

func TestDuplicateGhostFollowsPointerAndDropsOnClick(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	n := score.NewNote(1, 0.5, big.NewRat(1, 1))
	ed.Score.Add(n)
	ed.selectOnly(n)

	r.Dispatch(engine.Event{Hook: engine.KeyDown, Key: 'd'})
	drag(r, ed, 12, 8)  // beat 3, one lattice step up
	press(r, ed, 12, 8) // drop

	if len(ed.Score.Notes) != 2 {
		t.Fatalf("%d notes after duplicate, want 2", len(ed.Score.Notes))
	}
	clone := ed.Score.Notes[1]
	if clone == n {
		t.Fatalf("drop must add a clone, not the original")
	}
	if clone.Start != 3 {
		t.Fatalf("clone start = %v, want 3", clone.Start)
	}
	if clone.Pitch.Cmp(big.NewRat(9, 8)) != 0 {
		t.Fatalf("clone pitch = %s, want 9/8", clone.Pitch.RatString())
	}
	if n.Start != 1 || n.Pitch.Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("original must be untouched, got %v %s", n.Start, n.Pitch.RatString())
	}
	if !ed.Selected(clone) || ed.Selected(n) {
		t.Fatalf("selection must move to the dropped clone")
	}
}

func TestDuplicateWithEmptySelectionIsInert(t *testing.T) {
	r, ed, _ := newTestEditor(t)

	r.Dispatch(engine.Event{Hook: engine.KeyDown, Key: 'd'})
	press(r, ed, 10, 10) // should fall through to create, not drop a ghost
	release(r, ed, 10, 10)

	if len(ed.Score.Notes) != 1 {
		t.Fatalf("%d notes, want the press to reach drag-create", len(ed.Score.Notes))
	}
}

func TestGridCommandSetsLatticeStepFromSelection(t *testing.T) {
	r, ed, _ := newTestEditor(t)
	a := score.NewNote(0, 1, big.NewRat(5, 4))
	b := score.NewNote(1, 1, big.NewRat(3, 2))
	ed.Score.Add(a)
	ed.Score.Add(b)
	ed.selectOnly(a, b)

	key(r, ed, 'g')

	step := ed.PitchGrid()
	if step == nil || step.Cmp(big.NewRat(1, 4)) != 0 {
		t.Fatalf("pitch grid = %v, want 1/4", step)
	}
}

func TestPlaybackSchedulesNotesAndStopsCleanly(t *testing.T) {
	_, ed, fs := newTestEditor(t)
	ed.Score.Add(score.NewNote(0, 0.5, big.NewRat(1, 1)))
	ed.Score.Add(score.NewNote(1, 0.5, big.NewRat(3, 2)))

	// 120 bpm: beat 0 fires at 0s (synchronously on start), beat 1 at 0.5s.
	ed.TogglePlayback()
	if !ed.Playing() {
		t.Fatalf("transport must be playing after toggle")
	}
	if len(fs.ons) != 1 || fs.ons[0] != 0 {
		t.Fatalf("ons at start = %v, want the beat-0 note only", fs.ons)
	}

	// Each tick advances scheduler time by the 10ms resolution; the wall
	// clock stays near zero so timing is deterministic.
	for i := 0; i < 100; i++ {
		ed.TickAudio()
	}
	if len(fs.ons) != 2 || fs.ons[1] != 1 {
		t.Fatalf("ons after 1s = %v, want both notes", fs.ons)
	}
	if len(fs.offs) != 2 || fs.offs[0] != 0 || fs.offs[1] != 1 {
		t.Fatalf("offs after 1s = %v, want [0 1] in order", fs.offs)
	}
	if ed.PlayheadBeat() < 0 {
		t.Fatalf("playhead must be live while playing")
	}

	ed.TogglePlayback() // arms the stop
	ed.TickAudio()      // stop lands on the next tick
	if ed.Playing() {
		t.Fatalf("transport still playing after stop tick")
	}
	if fs.allOffs != 1 {
		t.Fatalf("AllOff ran %d times, want exactly 1", fs.allOffs)
	}
	if ed.PlayheadBeat() != -1 {
		t.Fatalf("playhead = %v when stopped, want -1", ed.PlayheadBeat())
	}
}

func TestPlaybackAutoStopsPastScoreEnd(t *testing.T) {
	_, ed, fs := newTestEditor(t)
	ed.Score.Add(score.NewNote(0, 0.5, big.NewRat(1, 1)))
	ed.Score.Length = 1 // 0.5s at 120 bpm

	ed.TogglePlayback()
	for i := 0; i < 100 && ed.Playing(); i++ {
		ed.TickAudio()
	}
	if ed.Playing() {
		t.Fatalf("transport must auto-stop past the end of the score")
	}
	if fs.allOffs != 1 {
		t.Fatalf("AllOff ran %d times, want 1", fs.allOffs)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, ed, _ := newTestEditor(t)
	ed.Score.Add(score.NewNote(1.5, 0.75, big.NewRat(5, 4)))
	ed.Tempo = 90
	ed.TimeGrid = 0.5
	ed.lattice.SetStep(big.NewRat(1, 4))
	ed.SetDocName("roundtrip")
	ed.dirty = true

	ed.WriteDocument()
	if ed.Dirty() {
		t.Fatalf("write must clear the dirty flag")
	}

	_, ed2, _ := newTestEditor(t)
	if err := ed2.OpenDocument("roundtrip"); err != nil {
		t.Fatal(err)
	}
	if ed2.Tempo != 90 || ed2.TimeGrid != 0.5 {
		t.Fatalf("session = %d bpm grid %v, want 90/0.5", ed2.Tempo, ed2.TimeGrid)
	}
	if len(ed2.Score.Notes) != 1 {
		t.Fatalf("%d notes loaded, want 1", len(ed2.Score.Notes))
	}
	n := ed2.Score.Notes[0]
	if n.Start != 1.5 || n.Duration != 0.75 || n.Pitch.Cmp(big.NewRat(5, 4)) != 0 {
		t.Fatalf("loaded note = %v+%v %s", n.Start, n.Duration, n.Pitch.RatString())
	}
	if step := ed2.PitchGrid(); step == nil || step.Cmp(big.NewRat(1, 4)) != 0 {
		t.Fatalf("pitch grid = %v after load, want 1/4", step)
	}
}
