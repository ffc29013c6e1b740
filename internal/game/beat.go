package game

import "time"

// Beat is a detected (or synthesized) onset.
type Beat struct {
	Time      time.Duration // Offset from the start of the track
	Intensity float64       // 0.0 to 1.0
}

// Ms returns the beat time in fractional milliseconds.
func (b Beat) Ms() float64 {
	return float64(b.Time) / float64(time.Millisecond)
}
