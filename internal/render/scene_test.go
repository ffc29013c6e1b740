package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/engine"
	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/theme"
)

type fixedRenderer struct {
	*DefaultRenderer
	columns, rows int
}

func (r *fixedRenderer) Size() (int, int) { return r.columns, r.rows }

func newScene() (*Scene, *fixedRenderer, *bytes.Buffer) {
	var out bytes.Buffer
	r := &fixedRenderer{DefaultRenderer: &DefaultRenderer{Out: &out, Fd: -1}, columns: 129, rows: 73}
	return NewScene(r, &theme.DefaultTheme{}, 1280, 720), r, &out
}

func TestLocate(t *testing.T) {
	s, _, _ := newScene()
	tests := []struct {
		x, y     float64
		col, row int
		ok       bool
	}{
		{640, 360, 64, 36, true},
		{1280, 720, 128, 72, true},
		{0, 0, 0, 0, false},
		{-20, 360, -2, 36, false},
	}
	for _, test := range tests {
		col, row, ok := s.Locate(test.x, test.y)
		if col != test.col || row != test.row || ok != test.ok {
			t.Errorf("locate(%v, %v) = %d %d %v", test.x, test.y, col, row, ok)
		}
	}
}

func TestDrawFrame(t *testing.T) {
	s, r, out := newScene()
	th := &theme.DefaultTheme{}
	f := engine.Frame{
		Clock: time.Second,
		Circles: []engine.CircleView{{
			HitCircle:  game.HitCircle{X: 640, Y: 360, Radius: 60, Visible: true},
			Progress:   0.5,
			RingRadius: 120,
		}},
		Feedback: []engine.Feedback{{X: 300, Y: 200, Kind: game.Perfect, Alpha: 1}},
		Cursors:  []game.HandCursor{{X: 640, Y: 360, Tracking: true}},
		Score:    300,
		Combo:    1,
	}
	s.Draw(f)
	r.flush()

	if sym, c := s.Cell(64, 36); sym != th.CursorSym() || c != th.CursorColor() {
		t.Errorf("centre = %q %v, want the cursor", sym, c)
	}
	if sym, _ := s.Cell(70, 36); sym != th.CircleSym() {
		t.Errorf("circle edge = %q", sym)
	}
	if sym, _ := s.Cell(76, 36); sym != th.RingSym() {
		t.Errorf("ring edge = %q", sym)
	}
	text := ""
	for col := 26; col < 34; col++ {
		sym, c := s.Cell(col, 20)
		if c != th.JudgementColor(game.Perfect) {
			t.Errorf("feedback colour %v at column %d", c, col)
		}
		text += sym
	}
	if text != "PERFECT!" {
		t.Errorf("feedback = %q", text)
	}
	if !strings.Contains(out.String(), "300") {
		t.Error("HUD not drawn")
	}

	out.Reset()
	s.Draw(f)
	r.flush()
	if strings.Contains(out.String(), th.CircleSym()) {
		t.Error("unchanged frame redrew the circle")
	}

	out.Reset()
	s.Draw(engine.Frame{})
	r.flush()
	if sym, _ := s.Cell(64, 36); sym != "" {
		t.Errorf("cleared frame left %q", sym)
	}
	if !strings.Contains(out.String(), "\033[37;65H ") {
		t.Error("cursor cell not blanked")
	}
}

func TestFade(t *testing.T) {
	c := fade(color.RGBA{200, 100, 50, 255}, 0.5)
	if c != (color.RGBA{100, 50, 25, 255}) {
		t.Fatalf("fade = %v", c)
	}
	if fade(c, -1) != (color.RGBA{0, 0, 0, 255}) {
		t.Fatal("negative alpha not clamped")
	}
}

func TestFillColor(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, Fd: -1}
	r.FillColor(3, 4, color.RGBA{1, 2, 3, 255}, "x")
	r.flush()
	if out.String() != "\033[3;4H\033[38;2;1;2;3mx\033[0m" {
		t.Fatalf("out = %q", out.String())
	}
}

func TestDecorationsExpire(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, Fd: -1}
	r.AddDecoration(5, 2, "ok", 1)
	r.tickDecorations()
	if len(r.decorations) != 1 {
		t.Fatal("decoration removed early")
	}
	r.tickDecorations()
	if len(r.decorations) != 0 {
		t.Fatal("decoration not removed")
	}
	r.flush()
	if !strings.HasSuffix(out.String(), "\033[2;5H  ") {
		t.Fatalf("out = %q", out.String())
	}
}
