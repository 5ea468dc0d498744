package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNoteColorIsOctaveEquivalent(t *testing.T) {
	th := New(DefaultPalette())
	if th.NoteColor(0) != th.NoteColor(1200) {
		t.Fatalf("octave-equivalent pitches must share a color")
	}
	if th.NoteColor(702) != th.NoteColor(702-1200) {
		t.Fatalf("negative cents must wrap into the same octave")
	}
	if th.NoteColor(0) == th.NoteColor(600) {
		t.Fatalf("a tritone apart should not share a color")
	}
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := "GIMP Palette\nName: two tone\nColumns: 2\n#\n  0   0   0\tblack\n255 255 255\twhite\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "two tone" {
		t.Fatalf("name = %q", p.Name)
	}
	if len(p.Colors) != 2 || p.Colors[0] != (RGB{0, 0, 0}) || p.Colors[1] != (RGB{255, 255, 255}) {
		t.Fatalf("colors = %v", p.Colors)
	}
}

func TestLoadGPLRejectsEmptyPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGPL(path); err == nil {
		t.Fatalf("palette with no colors must be rejected")
	}
}

func TestPaletteLookupInterpolatesEndpoints(t *testing.T) {
	p := DefaultPalette()
	if got := p.Lookup(0); got != p.Colors[0] {
		t.Fatalf("Lookup(0) = %v, want first color", got)
	}
	if got := p.Lookup(1); got != p.Colors[len(p.Colors)-1] {
		t.Fatalf("Lookup(1) = %v, want last color", got)
	}
}
