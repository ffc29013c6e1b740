package score

import (
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
)

type Scorer interface {
	// Grade a cursor touching a circle at clock. ok is false when the cursor
	// is out of reach, the timing is outside every window, or the circle is
	// already resolved.
	CheckHit(circle *game.HitCircle, cursor game.HandCursor, clock time.Duration) (result game.HitResult, ok bool)

	// Whether an unresolved circle can no longer be hit.
	CheckMiss(circle *game.HitCircle, clock time.Duration) bool
	// The result of a circle that expired. Miss points skip the multiplier.
	Miss() game.HitResult

	CalculateScore(base, combo int) int
	CalculateAccuracy(run *game.RunState) int
	Grade(accuracy int) string

	Summary(run *game.RunState) Summary
}

type Config struct {
	Judgements   []game.Judgement // Ascending by window
	MissPoints   int
	Tiers        []game.Tier // Descending by MinCombo
	CursorRadius float64
}

func DefaultConfig() Config {
	return Config{
		Judgements: []game.Judgement{
			{Kind: game.Perfect, Window: 100 * time.Millisecond, Points: 300, KeepCombo: true},
			{Kind: game.Good, Window: 250 * time.Millisecond, Points: 100, KeepCombo: true},
			{Kind: game.Bad, Window: 400 * time.Millisecond, Points: 50, KeepCombo: false},
		},
		MissPoints: 0,
		Tiers: []game.Tier{
			{MinCombo: 50, Multiplier: 2.5},
			{MinCombo: 20, Multiplier: 2.0},
			{MinCombo: 10, Multiplier: 1.5},
			{MinCombo: 0, Multiplier: 1.0},
		},
		CursorRadius: 25,
	}
}

// Summary is the frozen view of a finished run.
type Summary struct {
	Score    int
	MaxCombo int
	Perfect  int
	Good     int
	Bad      int
	Miss     int
	Accuracy int
	Grade    string
}
