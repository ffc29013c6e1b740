package chart

import "git.lost.host/meutraa/handrhythm/internal/game"

// Generator turns analyzed beats into playable hit circles.
type Generator interface {
	Generate(beats []game.Beat, width, height float64) []game.HitCircle
}
