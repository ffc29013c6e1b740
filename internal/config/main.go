package config

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Config struct {
	AudioFile   string
	TuningFile  string
	CachePath   string
	NoCache     bool
	Hands       string // "keyboard", "stdin", or a landmark stream path
	Seed        int64
	Delay       time.Duration
	FramePeriod time.Duration
	LogLevel    string
	LogFile     string
	Spectrum    string

	Tuning *Tuning
}

// Parse reads the command line and the tunables file it points at.
func Parse(args []string) (*Config, error) {
	var c Config
	app := kingpin.New("handrhythm", "Hand tracked rhythm game for any audio file")
	app.Version(Version)
	app.Arg("audio", "Audio file to play (mp3, ogg, wav)").Required().ExistingFileVar(&c.AudioFile)
	app.Flag("config", "Tunables file").Short('c').StringVar(&c.TuningFile)
	app.Flag("cache", "Analysis cache database").Default("./analysis.db").StringVar(&c.CachePath)
	app.Flag("no-cache", "Always analyze, never read or write the cache").BoolVar(&c.NoCache)
	app.Flag("hands", "Hand source: keyboard, stdin, or a landmark stream path").Default("keyboard").Short('H').StringVar(&c.Hands)
	app.Flag("seed", "Circle placement seed, 0 picks one from the clock").Default("0").Int64Var(&c.Seed)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&c.Delay)
	app.Flag("frame-period", "Render frame period").Default("16ms").Short('p').DurationVar(&c.FramePeriod)
	app.Flag("log-level", "debug, info, error or none").Default("info").StringVar(&c.LogLevel)
	app.Flag("log-file", "Write logs here instead of stderr").StringVar(&c.LogFile)
	app.Flag("spectrum", "Onset spectrum: bands or fft").Default(SpectrumBands).EnumVar(&c.Spectrum, SpectrumBands, SpectrumFFT)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	c.Tuning = DefaultTuning()
	if c.TuningFile != "" {
		if err := c.Tuning.LoadFromFile(c.TuningFile); nil != err {
			return nil, errors.Wrapf(err, "unable to load tunables from %s", c.TuningFile)
		}
	} else {
		c.Tuning.TryLoadDefault()
	}
	if err := c.Tuning.Validate(); nil != err {
		return nil, err
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return &c, nil
}
