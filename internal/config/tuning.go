package config

import (
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/analysis"
	"git.lost.host/meutraa/handrhythm/internal/chart"
	"git.lost.host/meutraa/handrhythm/internal/engine"
	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/log"
	"git.lost.host/meutraa/handrhythm/internal/score"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SpectrumBands = string(analysis.SpectrumBands)
	SpectrumFFT   = string(analysis.SpectrumFFT)
)

type CanvasTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type CircleTuning struct {
	Radius       float64       `yaml:"radius"`
	CursorRadius float64       `yaml:"cursor_radius"`
	Approach     time.Duration `yaml:"approach"`
	MinIntensity float64       `yaml:"min_intensity"`
	MinGap       time.Duration `yaml:"min_gap"`
	FeedbackFade float64       `yaml:"feedback_fade"`
}

type TimingTuning struct {
	Perfect time.Duration `yaml:"perfect"`
	Good    time.Duration `yaml:"good"`
	Bad     time.Duration `yaml:"bad"`

	PerfectPoints int `yaml:"perfect_points"`
	GoodPoints    int `yaml:"good_points"`
	BadPoints     int `yaml:"bad_points"`
	MissPoints    int `yaml:"miss_points"`
}

type AnalysisTuning struct {
	Chunk               time.Duration `yaml:"chunk"`
	PeakRatio           float64       `yaml:"peak_ratio"`
	DefaultBPM          float64       `yaml:"default_bpm"`
	MinBPM              float64       `yaml:"min_bpm"`
	MaxBPM              float64       `yaml:"max_bpm"`
	FrameSize           int           `yaml:"frame_size"`
	HopSize             int           `yaml:"hop_size"`
	ThresholdMultiplier float64       `yaml:"threshold_multiplier"`
	MinOnsets           int           `yaml:"min_onsets"`
}

// Tuning holds every gameplay and analysis constant that a player may want
// to override from a yaml file.
type Tuning struct {
	Canvas   CanvasTuning   `yaml:"canvas"`
	Circles  CircleTuning   `yaml:"circles"`
	Timing   TimingTuning   `yaml:"timing"`
	Combo    []game.Tier    `yaml:"combo"`
	Analysis AnalysisTuning `yaml:"analysis"`
}

func DefaultTuning() *Tuning {
	a := analysis.DefaultParams()
	c := chart.DefaultConfig()
	e := engine.DefaultConfig()
	s := score.DefaultConfig()
	return &Tuning{
		Canvas: CanvasTuning{Width: 1280, Height: 720},
		Circles: CircleTuning{
			Radius:       c.Radius,
			CursorRadius: s.CursorRadius,
			Approach:     c.Approach,
			MinIntensity: c.MinIntensity,
			MinGap:       c.MinGap,
			FeedbackFade: e.FeedbackFade,
		},
		Timing: TimingTuning{
			Perfect:       s.Judgements[0].Window,
			Good:          s.Judgements[1].Window,
			Bad:           s.Judgements[2].Window,
			PerfectPoints: s.Judgements[0].Points,
			GoodPoints:    s.Judgements[1].Points,
			BadPoints:     s.Judgements[2].Points,
			MissPoints:    s.MissPoints,
		},
		Combo: s.Tiers,
		Analysis: AnalysisTuning{
			Chunk:               a.ChunkDuration,
			PeakRatio:           a.PeakRatio,
			DefaultBPM:          a.DefaultBPM,
			MinBPM:              a.MinBPM,
			MaxBPM:              a.MaxBPM,
			FrameSize:           a.FrameSize,
			HopSize:             a.HopSize,
			ThresholdMultiplier: a.ThresholdMultiplier,
			MinOnsets:           a.MinOnsets,
		},
	}
}

func (t *Tuning) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if nil != err {
		return err
	}
	return yaml.Unmarshal(data, t)
}

// TryLoadDefault reads the first tunables file found in the user's config
// directories. A file that fails to load is logged and any fields it did
// set are reset to the defaults.
func (t *Tuning) TryLoadDefault() {
	home, err := os.UserHomeDir()
	if nil != err {
		return
	}
	paths := []string{
		filepath.Join(home, ".config", "handrhythm", "config.yaml"),
		filepath.Join(home, ".config", "handrhythm", "config.yml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); nil == err {
			if err := t.LoadFromFile(p); nil != err {
				log.Default().Warnf("ignoring tunables in %s: %v", p, err)
				*t = *DefaultTuning()
			}
			return
		}
	}
}

func (t *Tuning) Validate() error {
	switch {
	case t.Canvas.Width <= 0 || t.Canvas.Height <= 0:
		return errors.Errorf("canvas must be positive, got %vx%v", t.Canvas.Width, t.Canvas.Height)
	case t.Circles.Radius <= 0 || t.Circles.CursorRadius <= 0:
		return errors.New("circle and cursor radius must be positive")
	case t.Circles.Approach <= 0:
		return errors.Errorf("approach time must be positive, got %v", t.Circles.Approach)
	case t.Circles.FeedbackFade <= 0:
		return errors.New("feedback fade must be positive")
	case t.Timing.Perfect <= 0 || t.Timing.Perfect >= t.Timing.Good || t.Timing.Good >= t.Timing.Bad:
		return errors.Errorf("timing windows must be positive and strictly increasing, got %v %v %v",
			t.Timing.Perfect, t.Timing.Good, t.Timing.Bad)
	case t.Timing.PerfectPoints <= 0:
		return errors.New("perfect points must be positive")
	case len(t.Combo) == 0:
		return errors.New("combo table is empty")
	case t.Analysis.FrameSize <= 0 || t.Analysis.HopSize <= 0 || t.Analysis.HopSize > t.Analysis.FrameSize:
		return errors.Errorf("hop size %d must be positive and no larger than frame size %d",
			t.Analysis.HopSize, t.Analysis.FrameSize)
	case t.Analysis.Chunk <= 0:
		return errors.New("analysis chunk must be positive")
	case t.Analysis.MinBPM <= 0 || t.Analysis.MinBPM > t.Analysis.MaxBPM:
		return errors.Errorf("bpm range %v..%v is invalid", t.Analysis.MinBPM, t.Analysis.MaxBPM)
	}
	for i := 1; i < len(t.Combo); i++ {
		if t.Combo[i].MinCombo >= t.Combo[i-1].MinCombo {
			return errors.New("combo tiers must be sorted by descending min_combo")
		}
	}
	return nil
}

func (t *Tuning) AnalysisParams(spectrum string) analysis.Params {
	a := t.Analysis
	p := analysis.Params{
		ChunkDuration:       a.Chunk,
		PeakRatio:           a.PeakRatio,
		DefaultBPM:          a.DefaultBPM,
		MinBPM:              a.MinBPM,
		MaxBPM:              a.MaxBPM,
		FrameSize:           a.FrameSize,
		HopSize:             a.HopSize,
		ThresholdMultiplier: a.ThresholdMultiplier,
		MinOnsets:           a.MinOnsets,
		Spectrum:            analysis.SpectrumBands,
	}
	if spectrum == SpectrumFFT {
		p.Spectrum = analysis.SpectrumFFT
	}
	return p
}

func (t *Tuning) ChartConfig() chart.Config {
	return chart.Config{
		Radius:       t.Circles.Radius,
		Approach:     t.Circles.Approach,
		MinIntensity: t.Circles.MinIntensity,
		MinGap:       t.Circles.MinGap,
	}
}

func (t *Tuning) Judgements() []game.Judgement {
	return []game.Judgement{
		{Kind: game.Perfect, Window: t.Timing.Perfect, Points: t.Timing.PerfectPoints, KeepCombo: true},
		{Kind: game.Good, Window: t.Timing.Good, Points: t.Timing.GoodPoints, KeepCombo: true},
		{Kind: game.Bad, Window: t.Timing.Bad, Points: t.Timing.BadPoints, KeepCombo: false},
	}
}

func (t *Tuning) ScoreConfig() score.Config {
	tiers := make([]game.Tier, len(t.Combo))
	copy(tiers, t.Combo)
	return score.Config{
		Judgements:   t.Judgements(),
		MissPoints:   t.Timing.MissPoints,
		Tiers:        tiers,
		CursorRadius: t.Circles.CursorRadius,
	}
}

func (t *Tuning) EngineConfig() engine.Config {
	return engine.Config{
		Approach:     t.Circles.Approach,
		FeedbackFade: t.Circles.FeedbackFade,
	}
}
