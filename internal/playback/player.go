// Package playback plays a decoded track through the speaker. It is kept
// apart from decoding so that analysis does not link the sound device.
package playback

import (
	"sync/atomic"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/audio"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// DeviceError means the file decoded fine but the speaker could not be
// opened.
type DeviceError struct {
	Err error
}

func (e *DeviceError) Error() string {
	return "unable to open speaker: " + e.Err.Error()
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Player plays one file through the speaker. Its position is what the
// listener hears and is the clock every frame is judged against.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	done     atomic.Bool
}

func NewPlayer(path string) (*Player, error) {
	streamer, format, err := audio.Open(path)
	if nil != err {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, &DeviceError{Err: err}
	}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

// Play starts from the beginning of the track.
func (p *Player) Play() error {
	speaker.Clear()
	speaker.Lock()
	err := p.streamer.Seek(0)
	p.ctrl.Paused = false
	speaker.Unlock()
	if nil != err {
		return errors.Wrap(err, "unable to rewind")
	}
	p.done.Store(false)
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.done.Store(true)
	})))
	return nil
}

func (p *Player) TogglePause() {
	speaker.Lock()
	defer speaker.Unlock()
	p.ctrl.Paused = !p.ctrl.Paused
}

func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	if nil == p.streamer {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Position())
}

func (p *Player) Duration() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

// Done reports whether the track played to its end.
func (p *Player) Done() bool {
	return p.done.Load()
}

func (p *Player) Close() error {
	speaker.Clear()
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil {
		return nil
	}
	err := p.streamer.Close()
	p.streamer = nil
	return err
}
