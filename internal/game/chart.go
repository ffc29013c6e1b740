package game

import "time"

// Chart is everything derived from one audio file before play starts.
type Chart struct {
	BPM       int
	Duration  time.Duration
	Beats     []Beat
	Synthetic bool // Beats came from the tempo grid, not from onsets
	Circles   []HitCircle
}

func (c *Chart) Playable() bool {
	return len(c.Circles) > 0
}
