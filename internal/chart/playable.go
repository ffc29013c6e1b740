package chart

import "git.lost.host/meutraa/handrhythm/internal/game"

// EmptyResultWarning means analysis worked but nothing survived the beat
// filter. It is not a failure, the caller should not start a run and ask
// for a different file instead.
type EmptyResultWarning struct {
	Beats int // Beats before filtering
}

func (w *EmptyResultWarning) Error() string {
	if w.Beats == 0 {
		return "no beats were found in this audio, try a different file"
	}
	return "none of the detected beats are playable, try a different file"
}

// Playable reports an EmptyResultWarning for a chart without circles.
func Playable(c *game.Chart) error {
	if c.Playable() {
		return nil
	}
	return &EmptyResultWarning{Beats: len(c.Beats)}
}
