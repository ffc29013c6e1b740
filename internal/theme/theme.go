package theme

import (
	"image/color"

	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/score"
)

type Theme interface {
	JudgementColor(k game.Kind) color.RGBA
	CircleColor() color.RGBA
	CursorColor() color.RGBA

	CircleSym() string
	RingSym() string
	CursorSym() string

	RenderHUD(score, combo int) string
	RenderResult(s score.Summary) string
}
