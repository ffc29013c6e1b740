package render

import (
	"image/color"
	"math"

	"git.lost.host/meutraa/handrhythm/internal/engine"
	"git.lost.host/meutraa/handrhythm/internal/theme"
)

type cell struct {
	sym   string
	color color.RGBA
}

// Scene maps canvas space onto the terminal grid and redraws only the cells
// that changed since the previous frame. Row 0 belongs to the HUD.
type Scene struct {
	R     Renderer
	Theme theme.Theme

	Width, Height float64 // Canvas
	Columns, Rows int

	cur, prev []cell
}

func NewScene(r Renderer, th theme.Theme, width, height float64) *Scene {
	columns, rows := r.Size()
	return &Scene{
		R:       r,
		Theme:   th,
		Width:   width,
		Height:  height,
		Columns: columns,
		Rows:    rows,
		cur:     make([]cell, columns*rows),
		prev:    make([]cell, columns*rows),
	}
}

// Locate returns the zero based grid cell for a canvas point.
func (s *Scene) Locate(x, y float64) (col, row int, ok bool) {
	col = int(math.Round(x / s.Width * float64(s.Columns-1)))
	row = int(math.Round(y / s.Height * float64(s.Rows-1)))
	ok = col >= 0 && col < s.Columns && row > 0 && row < s.Rows
	return
}

func (s *Scene) set(col, row int, sym string, c color.RGBA) {
	if col < 0 || col >= s.Columns || row <= 0 || row >= s.Rows {
		return
	}
	s.cur[row*s.Columns+col] = cell{sym: sym, color: c}
}

// Cell reports what the last Draw left at a grid cell.
func (s *Scene) Cell(col, row int) (string, color.RGBA) {
	c := s.prev[row*s.Columns+col]
	return c.sym, c.color
}

func (s *Scene) outline(x, y, radius float64, sym string, c color.RGBA) {
	rx := radius / s.Width * float64(s.Columns-1)
	ry := radius / s.Height * float64(s.Rows-1)
	steps := int(4 * math.Pi * math.Max(rx, ry))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		col, row, ok := s.Locate(x+radius*math.Cos(a), y+radius*math.Sin(a))
		if ok {
			s.set(col, row, sym, c)
		}
	}
}

func (s *Scene) text(x, y float64, msg string, c color.RGBA) {
	col, row, ok := s.Locate(x, y)
	if !ok {
		return
	}
	runes := []rune(msg)
	start := col - len(runes)/2
	for i, r := range runes {
		s.set(start+i, row, string(r), c)
	}
}

func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: c.A,
	}
}

// Draw composes f and queues the changed cells on the renderer.
func (s *Scene) Draw(f engine.Frame) {
	for i := range s.cur {
		s.cur[i] = cell{}
	}

	circle := s.Theme.CircleColor()
	for _, c := range f.Circles {
		s.outline(c.X, c.Y, c.RingRadius, s.Theme.RingSym(), fade(circle, 0.3+0.7*c.Progress))
		s.outline(c.X, c.Y, c.Radius, s.Theme.CircleSym(), circle)
	}
	for _, fb := range f.Feedback {
		s.text(fb.X, fb.Y, fb.Text(), fade(s.Theme.JudgementColor(fb.Kind), fb.Alpha))
	}
	for _, cur := range f.Cursors {
		if col, row, ok := s.Locate(cur.X, cur.Y); ok {
			s.set(col, row, s.Theme.CursorSym(), s.Theme.CursorColor())
		}
	}

	for i := range s.cur {
		if s.cur[i] == s.prev[i] {
			continue
		}
		row, col := uint16(i/s.Columns+1), uint16(i%s.Columns+1)
		if s.cur[i].sym == "" {
			s.R.Fill(row, col, " ")
		} else {
			s.R.FillColor(row, col, s.cur[i].color, s.cur[i].sym)
		}
	}
	s.cur, s.prev = s.prev, s.cur

	s.R.Fill(1, 2, s.Theme.RenderHUD(f.Score, f.Combo))
}
