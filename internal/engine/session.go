package engine

import (
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/hand"
	"git.lost.host/meutraa/handrhythm/internal/score"
)

// Clock is the playback position. The audio player is the clock in play;
// tests drive a manual one.
type Clock interface {
	Position() time.Duration
}

// ManualClock only moves when told to.
type ManualClock struct {
	Now time.Duration
}

func (c *ManualClock) Position() time.Duration { return c.Now }

func (c *ManualClock) Advance(d time.Duration) { c.Now += d }

// Session owns one run and feeds the engine from a clock and a hand source.
type Session struct {
	Engine        *Engine
	Clock         Clock
	Hands         hand.Source
	Width, Height float64

	state State
}

func NewSession(e *Engine, clock Clock, hands hand.Source, circles []game.HitCircle, width, height float64) *Session {
	return &Session{
		Engine: e,
		Clock:  clock,
		Hands:  hands,
		Width:  width,
		Height: height,
		state:  NewState(circles),
	}
}

// Step advances to the clock's current position using the latest hand
// snapshot, however stale.
func (s *Session) Step() Frame {
	cursors := hand.Cursors(s.Hands.Latest(), s.Width, s.Height)
	var f Frame
	s.state, f = s.Engine.Advance(s.state, s.Clock.Position(), cursors)
	return f
}

func (s *Session) State() State {
	return s.state
}

// Restart resets every circle and the run.
func (s *Session) Restart() {
	s.state = NewState(s.state.Circles)
}

func (s *Session) Summary() score.Summary {
	return s.Engine.Scorer.Summary(&s.state.Run)
}
