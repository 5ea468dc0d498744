package editor

import (
	"encoding/json"
	"strconv"

	"github.com/atotto/clipboard"

	"notefield/debug"
	"notefield/score"
)

// yankSelection serializes the selected notes to the system clipboard as
// JSON, the same wire shape documents use.
func (ed *Editor) yankSelection() {
	sel := ed.Selection()
	if len(sel) == 0 {
		ed.setStatus("yank: nothing selected")
		return
	}
	data, err := json.Marshal(sel)
	if err != nil {
		debug.Warn("clipboard", "marshal: %v", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		debug.Warn("clipboard", "write: %v", err)
		ed.setStatus("yank failed")
		return
	}
	ed.setStatus("yanked " + strconv.Itoa(len(sel)))
}

// pasteAtPointer inserts clipboard notes anchored at the pointer's
// grid-snapped beat, preserving their relative layout.
func (ed *Editor) pasteAtPointer() {
	text, err := clipboard.ReadAll()
	if err != nil {
		debug.Warn("clipboard", "read: %v", err)
		return
	}
	var notes []*score.Note
	if err := json.Unmarshal([]byte(text), &notes); err != nil || len(notes) == 0 {
		ed.setStatus("paste: clipboard has no notes")
		return
	}

	anchor := notes[0].Start
	for _, n := range notes {
		if n.Start < anchor {
			anchor = n.Start
		}
	}
	dBeat := ed.snapBeat(ed.view.BeatAt(ed.pointer.X)) - anchor

	for _, n := range notes {
		n.Start += dBeat
		if n.Start < 0 {
			n.Start = 0
		}
		ed.Score.Add(n)
	}
	ed.selectOnly(notes...)
	ed.dirty = true
	ed.setStatus("pasted " + strconv.Itoa(len(notes)))
}
