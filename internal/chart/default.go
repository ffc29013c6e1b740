// Package chart filters beats down to a playable subset and places a hit
// circle for each of them.
package chart

import (
	"math/rand"
	"sort"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/log"
)

type Config struct {
	Radius       float64
	Approach     time.Duration // A circle is shown this long before its beat
	MinIntensity float64
	MinGap       time.Duration // Between consecutive kept beats
}

func DefaultConfig() Config {
	return Config{
		Radius:       60,
		Approach:     3000 * time.Millisecond,
		MinIntensity: 0.6,
		MinGap:       600 * time.Millisecond,
	}
}

type DefaultGenerator struct {
	Config Config
	Rand   *rand.Rand
	Log    *log.Logger
}

func NewGenerator(c Config, seed int64) *DefaultGenerator {
	return &DefaultGenerator{
		Config: c,
		Rand:   rand.New(rand.NewSource(seed)),
		Log:    log.Default(),
	}
}

// Filter narrows beats to those with room for the approach animation,
// strong enough, and at least MinGap after the previously kept one. The
// spacing pass is a greedy forward scan, so earlier beats win.
func (g *DefaultGenerator) Filter(beats []game.Beat) []game.Beat {
	l := g.logger()
	c := g.Config

	timed := make([]game.Beat, 0, len(beats))
	for _, b := range beats {
		if b.Time >= c.Approach {
			timed = append(timed, b)
		}
	}
	l.Debugf("after time filter: %d of %d beats", len(timed), len(beats))

	strong := timed[:0]
	for _, b := range timed {
		if b.Intensity >= c.MinIntensity {
			strong = append(strong, b)
		}
	}
	l.Debugf("after intensity filter (>= %.2f): %d beats", c.MinIntensity, len(strong))

	sort.SliceStable(strong, func(i, j int) bool {
		return strong[i].Time < strong[j].Time
	})

	spaced := []game.Beat{}
	for _, b := range strong {
		if len(spaced) == 0 || b.Time-spaced[len(spaced)-1].Time >= c.MinGap {
			spaced = append(spaced, b)
		}
	}
	l.Debugf("after spacing filter (>= %v): %d beats", c.MinGap, len(spaced))
	return spaced
}

func (g *DefaultGenerator) Generate(beats []game.Beat, width, height float64) []game.HitCircle {
	spaced := g.Filter(beats)
	if len(spaced) == 0 {
		g.logger().Warnf("no beats passed the filters")
		return []game.HitCircle{}
	}

	margin := g.Config.Radius * 2
	circles := make([]game.HitCircle, len(spaced))
	for i, b := range spaced {
		circles[i] = game.HitCircle{
			ID:        i,
			X:         g.place(margin, width),
			Y:         g.place(margin, height),
			Radius:    g.Config.Radius,
			BeatTime:  b.Time,
			SpawnTime: b.Time - g.Config.Approach,
		}
	}
	g.logger().Infof("generated %d circles from %d beats", len(circles), len(beats))
	return circles
}

// place picks a coordinate uniformly in [margin, size-margin]. A canvas too
// small for the margin centers the circle instead.
func (g *DefaultGenerator) place(margin, size float64) float64 {
	span := size - 2*margin
	if span <= 0 {
		return size / 2
	}
	return margin + g.Rand.Float64()*span
}

func (g *DefaultGenerator) logger() *log.Logger {
	if g.Log == nil {
		return log.Default()
	}
	return g.Log
}
