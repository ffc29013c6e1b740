package game

// RunState is the aggregate of a single play-through. The zero value is a
// freshly reset run.
type RunState struct {
	Score    int
	Combo    int
	MaxCombo int

	PerfectCount int
	GoodCount    int
	BadCount     int
	MissCount    int
}

func (r *RunState) Resolved() int {
	return r.PerfectCount + r.GoodCount + r.BadCount + r.MissCount
}

// Count bumps the tally for k.
func (r *RunState) Count(k Kind) {
	switch k {
	case Perfect:
		r.PerfectCount++
	case Good:
		r.GoodCount++
	case Bad:
		r.BadCount++
	case Miss:
		r.MissCount++
	}
}
