package editor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"notefield/score"
	"notefield/theme"
)

type cell struct {
	r     rune
	color lipgloss.Color
}

// View draws the note canvas: grid marks, notes colored by pitch class,
// selection, the in-flight drag artifacts (pending note, rubber band, ghost)
// and the playhead.
func (ed *Editor) View(th *theme.Theme) string {
	v := &ed.view
	cells := make([][]cell, v.Rows)
	for y := range cells {
		cells[y] = make([]cell, v.Cols)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}

	ed.drawGrid(th, cells)
	ed.drawBand(th, cells)
	for _, n := range ed.Score.Notes {
		color := th.NoteColor(n.Cents())
		if ed.sel[n] {
			color = th.Selection()
		}
		ed.drawNote(th, cells, n, color)
	}
	if ed.pending != nil {
		ed.drawNote(th, cells, ed.pending, th.Accent())
	}
	ed.drawGhost(th, cells)
	ed.drawPlayhead(th, cells)

	var out strings.Builder
	for y, row := range cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		for _, c := range row {
			if c.color == "" {
				out.WriteRune(c.r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.r)))
		}
	}
	return out.String()
}

// drawGrid marks whole beats along every row and the base pitch row.
func (ed *Editor) drawGrid(th *theme.Theme, cells [][]cell) {
	v := &ed.view
	muted := th.Muted()
	for x := 0; x < v.Cols; x++ {
		beat := v.BeatAt(x)
		_, frac := math.Modf(beat)
		if math.Abs(frac) > 1e-9 {
			continue
		}
		for y := 0; y < v.Rows; y++ {
			cells[y][x] = cell{r: th.Symbols.GridDot, color: muted}
		}
	}
	baseRow := v.RowOf(0)
	if baseRow >= 0 && baseRow < v.Rows {
		for x := 0; x < v.Cols; x++ {
			if cells[baseRow][x].r == ' ' {
				cells[baseRow][x] = cell{r: '-', color: muted}
			}
		}
	}
}

func (ed *Editor) drawNote(th *theme.Theme, cells [][]cell, n *score.Note, color lipgloss.Color) {
	v := &ed.view
	y := v.RowOf(n.Cents())
	if y < 0 || y >= v.Rows {
		return
	}
	c0 := v.ColOf(n.Start)
	c1 := v.ColOf(n.End()) - 1
	if c1 < c0 {
		c1 = c0
	}
	wide := c1-c0 >= 2
	for x := c0; x <= c1; x++ {
		if x < 0 || x >= v.Cols {
			continue
		}
		r := th.Symbols.NoteBody
		if wide && x == c0 {
			r = th.Symbols.NoteLeft
		}
		if wide && x == c1 {
			r = th.Symbols.NoteRight
		}
		cells[y][x] = cell{r: r, color: color}
	}
}

func (ed *Editor) drawBand(th *theme.Theme, cells [][]cell) {
	if ed.band == nil {
		return
	}
	v := &ed.view
	x0, x1 := v.ColOf(ed.band.beat0), v.ColOf(ed.band.beat1)
	y0, y1 := v.RowOf(ed.band.cents0), v.RowOf(ed.band.cents1)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	muted := th.Muted()
	for y := y0; y <= y1; y++ {
		if y < 0 || y >= v.Rows {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= v.Cols {
				continue
			}
			cells[y][x] = cell{r: th.Symbols.BandFill, color: muted}
		}
	}
}

func (ed *Editor) drawGhost(th *theme.Theme, cells [][]cell) {
	if ed.ghost == nil {
		return
	}
	v := &ed.view
	accent := th.Accent()
	for _, g := range ed.ghost {
		start := g.Start + ed.ghostDBeat
		pitch := ed.lattice.Transpose(g.Pitch, ed.ghostDSteps)
		shifted := score.NewNote(start, g.Duration, pitch)
		y := v.RowOf(shifted.Cents())
		if y < 0 || y >= v.Rows {
			continue
		}
		c0 := v.ColOf(shifted.Start)
		c1 := v.ColOf(shifted.End()) - 1
		if c1 < c0 {
			c1 = c0
		}
		for x := c0; x <= c1; x++ {
			if x >= 0 && x < v.Cols {
				cells[y][x] = cell{r: th.Symbols.Ghost, color: accent}
			}
		}
	}
}

func (ed *Editor) drawPlayhead(th *theme.Theme, cells [][]cell) {
	beat := ed.PlayheadBeat()
	if beat < 0 {
		return
	}
	v := &ed.view
	x := v.ColOf(beat)
	if x < 0 || x >= v.Cols {
		return
	}
	color := th.Playhead()
	for y := 0; y < v.Rows; y++ {
		if cells[y][x].r == ' ' || cells[y][x].r == th.Symbols.GridDot {
			cells[y][x] = cell{r: th.Symbols.Playhead, color: color}
		}
	}
}
