package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
)

type DefaultScorer struct {
	Config Config
}

func NewScorer(c Config) *DefaultScorer {
	return &DefaultScorer{Config: c}
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Distance is the signed timing error, negative when early.
func (s *DefaultScorer) Distance(circle *game.HitCircle, clock time.Duration) time.Duration {
	return clock - circle.BeatTime
}

func (s *DefaultScorer) Reaches(circle *game.HitCircle, cursor game.HandCursor) bool {
	dx, dy := cursor.X-circle.X, cursor.Y-circle.Y
	return math.Hypot(dx, dy) <= circle.Radius+s.Config.CursorRadius
}

// Judge returns the tightest window strictly containing the error.
func (s *DefaultScorer) Judge(absDistance time.Duration) *game.Judgement {
	for i := range s.Config.Judgements {
		if absDistance < s.Config.Judgements[i].Window {
			return &s.Config.Judgements[i]
		}
	}
	return nil
}

func (s *DefaultScorer) CheckHit(circle *game.HitCircle, cursor game.HandCursor, clock time.Duration) (game.HitResult, bool) {
	if circle.Hit || !cursor.Tracking || !s.Reaches(circle, cursor) {
		return game.HitResult{}, false
	}
	j := s.Judge(abs(s.Distance(circle, clock)))
	if nil == j {
		return game.HitResult{}, false
	}
	return game.HitResult{Kind: j.Kind, Points: j.Points, MaintainCombo: j.KeepCombo}, true
}

func (s *DefaultScorer) widest() time.Duration {
	j := s.Config.Judgements
	if len(j) == 0 {
		return 0
	}
	return j[len(j)-1].Window
}

func (s *DefaultScorer) CheckMiss(circle *game.HitCircle, clock time.Duration) bool {
	if circle.Hit {
		return false
	}
	return clock > circle.BeatTime+s.widest()
}

func (s *DefaultScorer) Miss() game.HitResult {
	return game.HitResult{Kind: game.Miss, Points: s.Config.MissPoints}
}

func (s *DefaultScorer) Multiplier(combo int) float64 {
	for _, t := range s.Config.Tiers {
		if combo >= t.MinCombo {
			return t.Multiplier
		}
	}
	return 1
}

// CalculateScore scales base by the multiplier for combo, the streak going
// into the hit.
func (s *DefaultScorer) CalculateScore(base, combo int) int {
	return int(math.Floor(float64(base) * s.Multiplier(combo)))
}

func (s *DefaultScorer) points(k game.Kind) int {
	if k == game.Miss {
		return s.Config.MissPoints
	}
	for _, j := range s.Config.Judgements {
		if j.Kind == k {
			return j.Points
		}
	}
	return 0
}

func (s *DefaultScorer) CalculateAccuracy(run *game.RunState) int {
	total := run.Resolved()
	best := s.points(game.Perfect)
	if total == 0 || best == 0 {
		return 100
	}
	weighted := run.PerfectCount*best +
		run.GoodCount*s.points(game.Good) +
		run.BadCount*s.points(game.Bad) +
		run.MissCount*s.points(game.Miss)
	return int(math.Round(100 * float64(weighted) / float64(total*best)))
}

func (s *DefaultScorer) Grade(accuracy int) string {
	switch {
	case accuracy >= 95:
		return "S"
	case accuracy >= 90:
		return "A"
	case accuracy >= 80:
		return "B"
	case accuracy >= 70:
		return "C"
	}
	return "D"
}

func (s *DefaultScorer) Summary(run *game.RunState) Summary {
	acc := s.CalculateAccuracy(run)
	return Summary{
		Score:    run.Score,
		MaxCombo: run.MaxCombo,
		Perfect:  run.PerfectCount,
		Good:     run.GoodCount,
		Bad:      run.BadCount,
		Miss:     run.MissCount,
		Accuracy: acc,
		Grade:    s.Grade(acc),
	}
}
