package theme

import (
	"image/color"
	"strings"
	"testing"

	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/score"
)

func TestJudgementColors(t *testing.T) {
	th := &DefaultTheme{}
	tests := map[game.Kind]color.RGBA{
		game.Perfect: {0xFF, 0xD7, 0x00, 255},
		game.Good:    {0x06, 0xB6, 0xD4, 255},
		game.Bad:     {0x9C, 0xA3, 0xAF, 255},
		game.Miss:    {0xEF, 0x44, 0x44, 255},
	}
	for k, expected := range tests {
		if c := th.JudgementColor(k); c != expected {
			t.Errorf("%v = %v, want %v", k, c, expected)
		}
	}
	if hex(tests[game.Perfect]) != "#FFD700" {
		t.Errorf("hex = %v", hex(tests[game.Perfect]))
	}
}

func TestRenderResult(t *testing.T) {
	th := &DefaultTheme{}
	out := th.RenderResult(score.Summary{Score: 4321, MaxCombo: 12, Perfect: 9, Good: 2, Accuracy: 91, Grade: "A"})
	for _, want := range []string{"Results", "4321", "12x", "91%", "Grade", "A"} {
		if !strings.Contains(out, want) {
			t.Errorf("result card is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHUD(t *testing.T) {
	out := (&DefaultTheme{}).RenderHUD(1500, 7)
	if !strings.Contains(out, "1500") || !strings.Contains(out, "7x") {
		t.Fatalf("hud = %q", out)
	}
}
