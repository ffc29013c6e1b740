package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/game"
)

var result time.Duration

func BenchmarkDistance(b *testing.B) {
	s := NewScorer(DefaultConfig())
	c := &game.HitCircle{BeatTime: 12456 * time.Millisecond}
	total := time.Duration(0)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		total += s.Distance(c, 13456*time.Millisecond)
	}

	result = total
}

func TestCalculateScore(t *testing.T) {
	s := NewScorer(DefaultConfig())
	tests := []struct {
		base, combo, expected int
	}{
		{100, 0, 100},
		{100, 9, 100},
		{100, 10, 150},
		{100, 19, 150},
		{100, 20, 200},
		{100, 49, 200},
		{100, 50, 250},
		{300, 10, 450},
		{50, 10, 75},
		{101, 10, 151},
	}
	for _, test := range tests {
		if out := s.CalculateScore(test.base, test.combo); out != test.expected {
			t.Log("base    ", test.base)
			t.Log("combo   ", test.combo)
			t.Log("out     ", out)
			t.Log("expected", test.expected)
			t.Fail()
		}
	}
}

func TestCalculateAccuracy(t *testing.T) {
	s := NewScorer(DefaultConfig())
	tests := []struct {
		run      game.RunState
		expected int
	}{
		{game.RunState{}, 100},
		{game.RunState{PerfectCount: 4}, 100},
		{game.RunState{MissCount: 3}, 0},
		{game.RunState{PerfectCount: 1, GoodCount: 1}, 67},
		{game.RunState{PerfectCount: 1, BadCount: 1}, 58},
		{game.RunState{PerfectCount: 3, MissCount: 1}, 75},
	}
	for _, test := range tests {
		if out := s.CalculateAccuracy(&test.run); out != test.expected {
			t.Errorf("accuracy(%+v) = %d, want %d", test.run, out, test.expected)
		}
	}
}

func TestGrade(t *testing.T) {
	s := NewScorer(DefaultConfig())
	tests := map[int]string{
		100: "S", 95: "S", 94: "A", 90: "A", 89: "B", 80: "B",
		79: "C", 70: "C", 69: "D", 0: "D",
	}
	for accuracy, expected := range tests {
		if out := s.Grade(accuracy); out != expected {
			t.Errorf("grade(%d) = %s, want %s", accuracy, out, expected)
		}
	}
}

func TestCheckHitWindows(t *testing.T) {
	s := NewScorer(DefaultConfig())
	ms := time.Millisecond
	tests := []struct {
		offset time.Duration
		kind   game.Kind
		points int
		keep   bool
		ok     bool
	}{
		{0, game.Perfect, 300, true, true},
		{-99 * ms, game.Perfect, 300, true, true},
		{100 * ms, game.Good, 100, true, true},
		{-100 * ms, game.Good, 100, true, true},
		{249 * ms, game.Good, 100, true, true},
		{250 * ms, game.Bad, 50, false, true},
		{399 * ms, game.Bad, 50, false, true},
		{400 * ms, game.None, 0, false, false},
		{-2 * time.Second, game.None, 0, false, false},
	}
	cursor := game.HandCursor{X: 400, Y: 300, Tracking: true}
	for _, test := range tests {
		c := &game.HitCircle{X: 400, Y: 300, Radius: 60, BeatTime: 5 * time.Second}
		res, ok := s.CheckHit(c, cursor, c.BeatTime+test.offset)
		if ok != test.ok || res.Kind != test.kind || res.Points != test.points || res.MaintainCombo != test.keep {
			t.Errorf("offset %v: got %+v ok=%v, want %v", test.offset, res, ok, test.kind)
		}
	}
}

func TestCheckHitReach(t *testing.T) {
	s := NewScorer(DefaultConfig())
	c := &game.HitCircle{X: 400, Y: 300, Radius: 60, BeatTime: time.Second}

	if _, ok := s.CheckHit(c, game.HandCursor{X: 485, Y: 300, Tracking: true}, time.Second); !ok {
		t.Error("cursor exactly at radius+cursorRadius should reach")
	}
	if _, ok := s.CheckHit(c, game.HandCursor{X: 485.5, Y: 300, Tracking: true}, time.Second); ok {
		t.Error("cursor beyond reach hit the circle")
	}
	if _, ok := s.CheckHit(c, game.HandCursor{X: 400, Y: 300}, time.Second); ok {
		t.Error("untracked cursor hit the circle")
	}

	c.Hit, c.Result = true, game.Good
	if _, ok := s.CheckHit(c, game.HandCursor{X: 400, Y: 300, Tracking: true}, time.Second); ok {
		t.Error("resolved circle was hit again")
	}
}

func TestCheckMiss(t *testing.T) {
	s := NewScorer(DefaultConfig())
	c := &game.HitCircle{BeatTime: time.Second}
	if s.CheckMiss(c, 1400*time.Millisecond) {
		t.Error("miss at exactly the bad window")
	}
	if !s.CheckMiss(c, 1401*time.Millisecond) {
		t.Error("no miss past the bad window")
	}
	c.Hit = true
	if s.CheckMiss(c, time.Hour) {
		t.Error("resolved circle missed")
	}
}

func TestMiss(t *testing.T) {
	cfg := DefaultConfig()
	if r := NewScorer(cfg).Miss(); r.Kind != game.Miss || r.Points != 0 {
		t.Fatalf("default miss = %+v", r)
	}
	cfg.MissPoints = -20
	if r := NewScorer(cfg).Miss(); r.Points != -20 {
		t.Fatalf("miss = %+v", r)
	}
}

func TestSummary(t *testing.T) {
	s := NewScorer(DefaultConfig())
	run := game.RunState{Score: 1234, MaxCombo: 7, PerfectCount: 9, GoodCount: 1}
	sum := s.Summary(&run)
	if sum.Accuracy != 93 || sum.Grade != "A" || sum.Score != 1234 || sum.MaxCombo != 7 || sum.Perfect != 9 || sum.Good != 1 {
		t.Errorf("summary = %+v", sum)
	}
}
