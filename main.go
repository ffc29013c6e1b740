package main

import (
	"context"
	"os"
	"os/signal"

	"git.lost.host/meutraa/handrhythm/internal/analysis"
	"git.lost.host/meutraa/handrhythm/internal/chart"
	"git.lost.host/meutraa/handrhythm/internal/config"
	"git.lost.host/meutraa/handrhythm/internal/log"
	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Default().Errorf("%v", err)
		os.Exit(1)
	}
}

func newLogger(c *config.Config) (*log.Logger, func(), error) {
	level := log.LevelFromString(c.LogLevel)
	if c.LogFile == "" {
		return log.New(os.Stderr, level), func() {}, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if nil != err {
		return nil, nil, errors.Wrap(err, "unable to open log file")
	}
	return log.New(f, level), func() { f.Close() }, nil
}

func run(args []string) error {
	c, err := config.Parse(args)
	if nil != err {
		return err
	}

	l, closeLog, err := newLogger(c)
	if nil != err {
		return err
	}
	defer closeLog()
	log.SetDefault(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := NewProgram(c, l)
	if err := p.Prepare(ctx); nil != err {
		var decodeErr *analysis.DecodeError
		var empty *chart.EmptyResultWarning
		switch {
		case errors.As(err, &decodeErr):
			return errors.Wrap(err, "pick another file")
		case errors.As(err, &empty):
			return errors.Wrap(err, "nothing to play in this track, try another one")
		}
		return err
	}

	sum, err := p.Play()
	if nil != err {
		return err
	}
	p.PrintResult(os.Stdout, sum)
	return nil
}
