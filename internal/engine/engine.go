// Package engine advances a run one frame at a time. Advance is pure: the
// previous State goes in, the next State and a read only Frame come out.
package engine

import (
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/score"
)

type Config struct {
	Approach     time.Duration
	FeedbackFade float64 // Alpha lost per frame
}

func DefaultConfig() Config {
	return Config{Approach: 3000 * time.Millisecond, FeedbackFade: 0.02}
}

// Feedback is the floating judgement text left where a circle resolved.
type Feedback struct {
	X, Y  float64
	Kind  game.Kind
	Age   int // Frames since the judgement
	Alpha float64
}

func (f Feedback) Text() string {
	switch f.Kind {
	case game.Perfect:
		return "PERFECT!"
	case game.Good:
		return "GOOD!"
	case game.Bad:
		return "BAD"
	case game.Miss:
		return "MISS"
	}
	return ""
}

type State struct {
	Run      game.RunState
	Circles  []game.HitCircle
	Feedback []Feedback
}

// NewState starts a fresh run over circles, clearing any play state they
// carry from a previous run.
func NewState(circles []game.HitCircle) State {
	cs := make([]game.HitCircle, len(circles))
	for i, c := range circles {
		c.Visible, c.Hit, c.Result = false, false, game.None
		cs[i] = c
	}
	return State{Circles: cs}
}

// Event is a circle resolved during a frame.
type Event struct {
	CircleID int
	X, Y     float64
	Kind     game.Kind
	Points   int // After the combo multiplier
	Cursor   int // Hand index, -1 for a miss
}

// CircleView is a live circle with its approach animation state.
type CircleView struct {
	game.HitCircle
	Progress   float64
	RingRadius float64
}

type Frame struct {
	Clock    time.Duration
	Circles  []CircleView
	Events   []Event
	Feedback []Feedback
	Cursors  []game.HandCursor
	Score    int
	Combo    int
	Finished bool // Every circle is resolved
}

type Engine struct {
	Config Config
	Scorer score.Scorer
}

func New(c Config, s score.Scorer) *Engine {
	return &Engine{Config: c, Scorer: s}
}

// RingRadius shrinks from three radii at spawn to the circle itself at the
// beat.
func RingRadius(radius, progress float64) float64 {
	return radius * (3 - 2*progress)
}

func (e *Engine) resolve(run *game.RunState, c *game.HitCircle, k game.Kind, points int) {
	c.Hit = true
	c.Result = k
	run.Count(k)
	run.Score += points
}

// Advance moves state to clock. Circles become visible, expired circles
// miss, then each live circle is tested against the cursors in order with
// the first one to land taking it.
func (e *Engine) Advance(prev State, clock time.Duration, cursors []game.HandCursor) (State, Frame) {
	next := State{
		Run:     prev.Run,
		Circles: make([]game.HitCircle, len(prev.Circles)),
	}
	copy(next.Circles, prev.Circles)
	run := &next.Run

	for _, f := range prev.Feedback {
		f.Age++
		f.Alpha = 1 - float64(f.Age)*e.Config.FeedbackFade
		if f.Alpha > 0 {
			next.Feedback = append(next.Feedback, f)
		}
	}

	for i := range next.Circles {
		c := &next.Circles[i]
		if !c.Visible && clock >= c.SpawnTime {
			c.Visible = true
		}
	}

	var events []Event
	for i := range next.Circles {
		c := &next.Circles[i]
		if !c.Live() || !e.Scorer.CheckMiss(c, clock) {
			continue
		}
		e.resolve(run, c, game.Miss, e.Scorer.Miss().Points)
		run.Combo = 0
		events = append(events, Event{CircleID: c.ID, X: c.X, Y: c.Y, Kind: game.Miss, Cursor: -1})
	}

	for i := range next.Circles {
		c := &next.Circles[i]
		if !c.Live() {
			continue
		}
		for _, cur := range cursors {
			res, ok := e.Scorer.CheckHit(c, cur, clock)
			if !ok {
				continue
			}
			points := e.Scorer.CalculateScore(res.Points, run.Combo)
			e.resolve(run, c, res.Kind, points)
			if res.MaintainCombo {
				run.Combo++
				if run.Combo > run.MaxCombo {
					run.MaxCombo = run.Combo
				}
			} else {
				run.Combo = 0
			}
			events = append(events, Event{CircleID: c.ID, X: c.X, Y: c.Y, Kind: res.Kind, Points: points, Cursor: cur.HandIndex})
			break
		}
	}

	for _, ev := range events {
		next.Feedback = append(next.Feedback, Feedback{X: ev.X, Y: ev.Y, Kind: ev.Kind, Alpha: 1})
	}

	return next, e.frame(&next, clock, cursors, events)
}

func (e *Engine) frame(s *State, clock time.Duration, cursors []game.HandCursor, events []Event) Frame {
	f := Frame{
		Clock:    clock,
		Events:   events,
		Feedback: s.Feedback,
		Cursors:  cursors,
		Score:    s.Run.Score,
		Combo:    s.Run.Combo,
		Finished: true,
	}
	for _, c := range s.Circles {
		if !c.Hit {
			f.Finished = false
		}
		if !c.Live() {
			continue
		}
		p := c.Progress(clock, e.Config.Approach)
		f.Circles = append(f.Circles, CircleView{HitCircle: c, Progress: p, RingRadius: RingRadius(c.Radius, p)})
	}
	return f
}
