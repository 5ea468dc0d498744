package editor

import (
	"math/big"

	"notefield/debug"
	"notefield/score"
)

// SetDocName names the document for subsequent writes.
func (ed *Editor) SetDocName(name string) { ed.docName = name }

// WriteDocument saves the current session under its document name.
func (ed *Editor) WriteDocument() {
	name := ed.docName
	if name == "" {
		name = "untitled"
		ed.docName = name
	}
	doc := &score.Document{
		Tempo:    ed.Tempo,
		TimeGrid: ed.TimeGrid,
		Length:   ed.Score.Length,
		Notes:    ed.Score.Notes,
	}
	if step := ed.lattice.Step(); step != nil {
		doc.PitchGrid = step.RatString()
	}
	if err := score.SaveDocument(name, doc); err != nil {
		debug.Warn("doc", "save %q: %v", name, err)
		ed.setStatus("write failed")
		return
	}
	ed.dirty = false
	ed.setStatus("wrote " + name)
}

// OpenDocument loads a saved document into the session.
func (ed *Editor) OpenDocument(name string) error {
	doc, err := score.LoadDocument(name)
	if err != nil {
		return err
	}
	ed.Score = &score.Score{Notes: doc.Notes, Length: doc.Length}
	if ed.Score.Length == 0 {
		ed.Score.Length = 16
	}
	if doc.Tempo > 0 {
		ed.Tempo = doc.Tempo
	}
	if doc.TimeGrid > 0 {
		ed.TimeGrid = doc.TimeGrid
	}
	if doc.PitchGrid != "" {
		if step, ok := new(big.Rat).SetString(doc.PitchGrid); ok {
			ed.lattice.SetStep(step)
		}
	}
	ed.clearSelection()
	ed.docName = name
	ed.dirty = false
	debug.Log("doc", "opened %q: %d notes", name, len(ed.Score.Notes))
	return nil
}
