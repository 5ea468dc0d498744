package audio

import (
	"math/big"
	"testing"
)

func TestNoteAndBend(t *testing.T) {
	tuning := Tuning{Base: 440, BendRange: 2}
	cases := []struct {
		ratio    *big.Rat
		wantNote uint8
		wantBend int16
	}{
		{big.NewRat(1, 1), 69, 0},
		{big.NewRat(2, 1), 81, 0},
		{big.NewRat(1, 2), 57, 0},
		{big.NewRat(3, 2), 76, 80},   // just fifth: +1.955 cents over 12-TET
		{big.NewRat(5, 4), 73, -561}, // just third: -13.686 cents
	}
	for _, c := range cases {
		note, bend := tuning.NoteAndBend(c.ratio)
		if note != c.wantNote || bend != c.wantBend {
			t.Errorf("NoteAndBend(%s) = (%d, %d), want (%d, %d)",
				c.ratio.RatString(), note, bend, c.wantNote, c.wantBend)
		}
	}
}

func TestNoteAndBendClampsToMIDIRange(t *testing.T) {
	tuning := Tuning{Base: 440, BendRange: 2}

	note, bend := tuning.NoteAndBend(big.NewRat(1, 1024))
	if note != 0 {
		t.Fatalf("note = %d, want clamp to 0", note)
	}
	if bend != -8192 {
		t.Fatalf("bend = %d, want clamp to -8192", bend)
	}

	note, bend = tuning.NoteAndBend(big.NewRat(1024, 1))
	if note != 127 {
		t.Fatalf("note = %d, want clamp to 127", note)
	}
	if bend != 8191 {
		t.Fatalf("bend = %d, want clamp to 8191", bend)
	}
}
