package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/analysis"
	"git.lost.host/meutraa/handrhythm/internal/cache"
	"git.lost.host/meutraa/handrhythm/internal/chart"
	"git.lost.host/meutraa/handrhythm/internal/config"
	"git.lost.host/meutraa/handrhythm/internal/engine"
	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/hand"
	"git.lost.host/meutraa/handrhythm/internal/log"
	"git.lost.host/meutraa/handrhythm/internal/playback"
	"git.lost.host/meutraa/handrhythm/internal/render"
	"git.lost.host/meutraa/handrhythm/internal/score"
	"git.lost.host/meutraa/handrhythm/internal/theme"
	"github.com/pkg/errors"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Grace period after the last circle resolves before the run ends on its own.
const outro = 2 * time.Second

type Program struct {
	Config    *config.Config
	Log       *log.Logger
	Store     cache.Store
	Loader    *analysis.Loader
	Generator chart.Generator
	Scorer    score.Scorer
	Theme     theme.Theme
	Renderer  render.Renderer

	// Where the analysis progress bar goes
	ProgressOut io.Writer

	chart game.Chart
}

func NewProgram(c *config.Config, l *log.Logger) *Program {
	g := chart.NewGenerator(c.Tuning.ChartConfig(), c.Seed)
	g.Log = l
	p := &Program{
		Config:      c,
		Log:         l,
		Loader:      analysis.NewLoader(c.Tuning.AnalysisParams(c.Spectrum)),
		Generator:   g,
		Scorer:      score.NewScorer(c.Tuning.ScoreConfig()),
		Theme:       &theme.DefaultTheme{},
		Renderer:    render.NewRenderer(),
		ProgressOut: os.Stderr,
	}
	if !c.NoCache {
		s := cache.NewSQLiteStore(c.CachePath)
		s.Log = l
		p.Store = s
	}
	return p
}

// analyze returns the cached analysis of the audio file, or runs it with a
// progress bar and caches the result.
func (p *Program) analyze(ctx context.Context) (*analysis.Result, error) {
	var sum string
	if nil != p.Store {
		var err error
		if sum, err = cache.HashFile(p.Config.AudioFile); nil != err {
			return nil, &analysis.DecodeError{Path: p.Config.AudioFile, Err: err}
		}
		res, err := p.Store.Load(sum)
		if nil != err {
			p.Log.Warnf("ignoring analysis cache: %v", err)
		} else if nil != res {
			p.Log.Infof("using cached analysis, %d bpm and %d beats", res.BPM, len(res.Beats))
			return res, nil
		}
	}

	bars := mpb.New(mpb.WithWidth(64), mpb.WithOutput(p.ProgressOut))
	bar := bars.AddBar(100,
		mpb.PrependDecorators(decor.Name("Analyzing: ")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	res, err := p.Loader.Load(ctx, p.Config.AudioFile, func(percent int) {
		bar.SetCurrent(int64(percent))
	})
	if nil != err {
		bar.Abort(false)
		bars.Wait()
		return nil, err
	}
	bar.SetTotal(-1, true)
	bars.Wait()

	p.Log.Infof("analyzed %s: %d bpm, %d beats over %v", p.Config.AudioFile, res.BPM, len(res.Beats), res.Duration)
	if res.Synthetic {
		p.Log.Warnf("too few onsets found, beats follow an even %d bpm grid", res.BPM)
	}
	if nil != p.Store {
		if err := p.Store.Save(sum, res); nil != err {
			p.Log.Warnf("unable to cache analysis: %v", err)
		}
	}
	return res, nil
}

// Prepare analyzes the audio and lays out the circles.
func (p *Program) Prepare(ctx context.Context) error {
	if nil != p.Store {
		if err := p.Store.Init(); nil != err {
			p.Log.Warnf("running without the analysis cache: %v", err)
			p.Store = nil
		} else {
			defer p.Store.Deinit()
		}
	}

	res, err := p.analyze(ctx)
	if nil != err {
		return err
	}

	t := p.Config.Tuning
	p.chart = game.Chart{
		BPM:       res.BPM,
		Duration:  res.Duration,
		Beats:     res.Beats,
		Synthetic: res.Synthetic,
		Circles:   p.Generator.Generate(res.Beats, t.Canvas.Width, t.Canvas.Height),
	}
	return chart.Playable(&p.chart)
}

func (p *Program) openHands() (hand.Source, <-chan struct{}, error) {
	if p.Config.Hands == "keyboard" {
		k, err := hand.NewKeyboardSource()
		if nil != err {
			return nil, nil, err
		}
		return k, k.Quit(), nil
	}
	s, err := hand.OpenStream(p.Config.Hands, p.Log)
	if nil != err {
		return nil, nil, err
	}
	return s, nil, nil
}

// playbackError keeps a missing sound device apart from a file that cannot
// be decoded; only the latter asks for another file.
func playbackError(path string, err error) error {
	var dev *playback.DeviceError
	if errors.As(err, &dev) {
		return errors.Wrap(err, "unable to start playback")
	}
	return &analysis.DecodeError{Path: path, Err: err}
}

// Play runs the prepared chart until the track ends, every circle has
// resolved, or the player quits.
func (p *Program) Play() (score.Summary, error) {
	hands, quit, err := p.openHands()
	if nil != err {
		return score.Summary{}, err
	}
	defer hands.Close()

	player, err := playback.NewPlayer(p.Config.AudioFile)
	if nil != err {
		return score.Summary{}, playbackError(p.Config.AudioFile, err)
	}
	defer player.Close()

	t := p.Config.Tuning
	e := engine.New(t.EngineConfig(), p.Scorer)
	session := engine.NewSession(e, player, hands, p.chart.Circles, t.Canvas.Width, t.Canvas.Height)

	if err := p.Renderer.Init(); nil != err {
		return score.Summary{}, errors.Wrap(err, "unable to prepare the terminal")
	}
	defer func() {
		if err := p.Renderer.Deinit(); nil != err {
			p.Log.Errorf("unable to restore the terminal: %v", err)
		}
	}()
	scene := render.NewScene(p.Renderer, p.Theme, t.Canvas.Width, t.Canvas.Height)

	started := make(chan struct{})
	go func() {
		time.Sleep(p.Config.Delay)
		if err := player.Play(); nil != err {
			p.Log.Errorf("unable to play: %v", err)
		}
		close(started)
	}()

	var finishedAt time.Duration = -1
	p.Renderer.RenderLoop(p.Config.FramePeriod, func(now time.Time) bool {
		select {
		case <-quit:
			return false
		default:
		}

		f := session.Step()
		scene.Draw(f)

		select {
		case <-started:
			if player.Done() {
				return false
			}
		default:
		}
		if f.Finished {
			if finishedAt < 0 {
				finishedAt = f.Clock
			}
			if f.Clock-finishedAt > outro {
				return false
			}
		}
		return true
	})

	sum := session.Summary()
	p.Log.Infof("run over: score %d, accuracy %d%%, grade %s", sum.Score, sum.Accuracy, sum.Grade)
	return sum, nil
}

func (p *Program) PrintResult(w io.Writer, s score.Summary) {
	fmt.Fprintln(w, p.Theme.RenderResult(s))
}
