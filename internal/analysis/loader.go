package analysis

import (
	"context"
	"sync"

	"git.lost.host/meutraa/handrhythm/internal/audio"
)

// Loader runs one analysis at a time. Starting a new Load abandons the one
// in flight, which then returns context.Canceled.
type Loader struct {
	Params Params
	Decode func(path string) (audio.Signal, error)

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

func NewLoader(p Params) *Loader {
	return &Loader{Params: p, Decode: audio.Decode}
}

func (l *Loader) Load(ctx context.Context, path string, progress Progress) (*Result, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		if l.gen == gen {
			l.cancel = nil
		}
		l.mu.Unlock()
		cancel()
	}()

	decode := l.Decode
	if decode == nil {
		decode = audio.Decode
	}
	return analyzeFile(ctx, decode, path, l.Params, progress)
}

// Cancel abandons the analysis in flight, if any.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
