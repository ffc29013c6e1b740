// Package analysis estimates tempo and onsets of an audio signal and turns
// them into beats.
package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/handrhythm/internal/audio"
	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/log"
)

// Progress receives coarse, non-decreasing completion percentages.
type Progress func(percent int)

func (p Progress) report(percent int) {
	if p != nil {
		p(percent)
	}
}

type Result struct {
	BPM      int
	Beats    []game.Beat
	Duration time.Duration
	// Synthetic is set when too few onsets were found and the beats are
	// the tempo grid instead.
	Synthetic bool
}

// AnalyzeFile decodes path and analyzes it.
func AnalyzeFile(ctx context.Context, path string, p Params, progress Progress) (*Result, error) {
	return analyzeFile(ctx, audio.Decode, path, p, progress)
}

func analyzeFile(ctx context.Context, decode func(string) (audio.Signal, error), path string, p Params, progress Progress) (*Result, error) {
	progress.report(10)
	signal, err := decode(path)
	if nil != err {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	progress.report(30)
	return Analyze(ctx, signal, p, progress)
}

// Analyze estimates the tempo and the beats of signal.
//
// When fewer than p.MinOnsets onsets are found every detected onset is
// discarded and the beats become an even grid at the estimated tempo. Quiet,
// ambient or very short tracks stay playable that way, at the cost of the
// beats no longer following the music.
func Analyze(ctx context.Context, signal audio.Signal, p Params, progress Progress) (res *Result, err error) {
	stage := "setup"
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &AnalysisError{Stage: stage, Err: fmt.Errorf("%v", r)}
		}
	}()

	if signal.SampleRate <= 0 {
		return nil, &AnalysisError{Stage: stage, Err: errors.Errorf("invalid sample rate %d", signal.SampleRate)}
	}
	if p.FrameSize < 2 || p.HopSize < 1 {
		return nil, &AnalysisError{Stage: stage, Err: errors.Errorf("invalid frame %d / hop %d", p.FrameSize, p.HopSize)}
	}
	progress.report(40)

	stage = "tempo"
	bpm, err := EstimateBPM(ctx, signal.Samples, signal.SampleRate, p)
	if nil != err {
		return nil, err
	}
	progress.report(60)

	stage = "onsets"
	strength, err := OnsetStrength(ctx, signal.Samples, p)
	if nil != err {
		return nil, err
	}
	beats := PickOnsets(strength, signal.SampleRate, p)

	duration := signal.Duration()
	synthetic := false
	if len(beats) < p.MinOnsets {
		log.Default().Infof("only %d onsets found, using a %.1f BPM grid", len(beats), bpm)
		beats = TempoGrid(bpm, duration)
		synthetic = true
	}
	progress.report(90)

	if err := ctx.Err(); nil != err {
		return nil, err
	}
	progress.report(100)

	return &Result{
		BPM:       int(math.Round(bpm)),
		Beats:     beats,
		Duration:  duration,
		Synthetic: synthetic,
	}, nil
}
