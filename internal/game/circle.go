package game

import (
	"math"
	"time"
)

type HitCircle struct {
	ID       int
	X, Y     float64 // Canvas space
	Radius   float64
	BeatTime time.Duration // The time the circle should be hit
	// BeatTime minus the approach time
	SpawnTime time.Duration

	// This is state
	Visible bool
	Hit     bool // Terminal, set on a hit or a miss
	Result  Kind
}

// Progress is the approach animation progress in [0, 1].
func (c *HitCircle) Progress(clock, approach time.Duration) float64 {
	if approach <= 0 {
		return 1
	}
	p := float64(clock-c.SpawnTime) / float64(approach)
	return math.Max(0, math.Min(1, p))
}

// Live reports whether the circle is on screen and still unresolved.
func (c *HitCircle) Live() bool {
	return c.Visible && !c.Hit
}
