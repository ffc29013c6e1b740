package game

import "time"

// Kind is the graded outcome of a hit circle.
type Kind uint8

const (
	None Kind = iota
	Perfect
	Good
	Bad
	Miss
)

func (k Kind) String() string {
	switch k {
	case Perfect:
		return "perfect"
	case Good:
		return "good"
	case Bad:
		return "bad"
	case Miss:
		return "miss"
	}
	return "none"
}

// Judgement is one timing window. A hit whose timing error is strictly
// less than Window is graded Kind.
type Judgement struct {
	Kind      Kind
	Window    time.Duration
	Points    int
	KeepCombo bool
}

// HitResult is the transient outcome of a successful hit test.
type HitResult struct {
	Kind          Kind
	Points        int
	MaintainCombo bool
}
