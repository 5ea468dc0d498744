package theme

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	NoteBody  rune // note interior
	NoteLeft  rune // left resize handle
	NoteRight rune // right resize handle
	GridDot   rune // beat grid mark
	Playhead  rune // playback cursor column
	BandFill  rune // box-select rubber band
	Ghost     rune // duplicate preview
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			NoteBody:  '█',
			NoteLeft:  '▌',
			NoteRight: '▐',
			GridDot:   '·',
			Playhead:  '│',
			BandFill:  '░',
			Ghost:     '▒',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG        = 0.0
	RoleSurface   = 0.1
	RoleMuted     = 0.2
	RoleFG        = 0.5
	RoleAccent    = 0.65
	RoleSelection = 0.8
	RoleWarning   = 0.9
	RolePlayhead  = 1.0
)

func (t *Theme) BG() lipgloss.Color        { return rgbToLipgloss(t.Palette.Lookup(RoleBG)) }
func (t *Theme) FG() lipgloss.Color        { return rgbToLipgloss(t.Palette.Lookup(RoleFG)) }
func (t *Theme) Muted() lipgloss.Color     { return rgbToLipgloss(t.Palette.Lookup(RoleMuted)) }
func (t *Theme) Accent() lipgloss.Color    { return rgbToLipgloss(t.Palette.Lookup(RoleAccent)) }
func (t *Theme) Selection() lipgloss.Color { return rgbToLipgloss(t.Palette.Lookup(RoleSelection)) }
func (t *Theme) Warning() lipgloss.Color   { return rgbToLipgloss(t.Palette.Lookup(RoleWarning)) }
func (t *Theme) Playhead() lipgloss.Color  { return rgbToLipgloss(t.Palette.Lookup(RolePlayhead)) }

// NoteColor maps a pitch to a hue: one full turn of the color wheel per
// octave, so octave-equivalent pitches share a color.
func (t *Theme) NoteColor(cents float64) lipgloss.Color {
	frac := math.Mod(cents, 1200) / 1200
	if frac < 0 {
		frac += 1
	}
	c := colorful.Hsv(frac*360, 0.55, 0.92)
	return lipgloss.Color(c.Hex())
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
