package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/score"
	"github.com/charmbracelet/lipgloss"
)

type DefaultTheme struct {
}

const (
	circleSym = "●"
	ringSym   = "·"
	cursorSym = "✚"
)

var (
	judgementColors = map[game.Kind]color.RGBA{
		game.Perfect: {255, 215, 0, 255},   // gold
		game.Good:    {6, 182, 212, 255},   // cyan
		game.Bad:     {156, 163, 175, 255}, // gray
		game.Miss:    {239, 68, 68, 255},   // red
	}
	circleColor = color.RGBA{236, 72, 153, 255}
	cursorColor = color.RGBA{255, 255, 255, 255}

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.ANSIColor(8)).
			Padding(1, 3)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(10)).
			Bold(true)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(8)).
			Width(12)
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(7)).
			Bold(true)
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(7))
)

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func (t *DefaultTheme) JudgementColor(k game.Kind) color.RGBA {
	c, ok := judgementColors[k]
	if !ok {
		return cursorColor
	}
	return c
}

func (t *DefaultTheme) CircleColor() color.RGBA { return circleColor }
func (t *DefaultTheme) CursorColor() color.RGBA { return cursorColor }

func (t *DefaultTheme) CircleSym() string { return circleSym }
func (t *DefaultTheme) RingSym() string   { return ringSym }
func (t *DefaultTheme) CursorSym() string { return cursorSym }

func (t *DefaultTheme) RenderHUD(score, combo int) string {
	return hudStyle.Render(fmt.Sprintf("Score %8d   Combo %4dx", score, combo))
}

func gradeColor(grade string) color.RGBA {
	switch grade {
	case "S":
		return judgementColors[game.Perfect]
	case "A":
		return judgementColors[game.Good]
	case "D":
		return judgementColors[game.Miss]
	}
	return judgementColors[game.Bad]
}

func (t *DefaultTheme) RenderResult(s score.Summary) string {
	row := func(label string, value interface{}, c *color.RGBA) string {
		v := valueStyle
		if nil != c {
			v = v.Copy().Foreground(hex(*c))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), v.Render(fmt.Sprint(value)))
	}
	perfect, good := judgementColors[game.Perfect], judgementColors[game.Good]
	bad, miss := judgementColors[game.Bad], judgementColors[game.Miss]
	grade := gradeColor(s.Grade)

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Results"),
		"",
		row("Score", s.Score, nil),
		row("Max combo", fmt.Sprintf("%dx", s.MaxCombo), nil),
		row("Perfect", s.Perfect, &perfect),
		row("Good", s.Good, &good),
		row("Bad", s.Bad, &bad),
		row("Miss", s.Miss, &miss),
		row("Accuracy", fmt.Sprintf("%d%%", s.Accuracy), nil),
		row("Grade", s.Grade, &grade),
	)
	return cardStyle.Render(body)
}
