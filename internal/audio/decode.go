// Package audio decodes audio files into analysable samples.
package audio

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// Formats lists the extensions Open understands.
var Formats = []string{".mp3", ".ogg", ".wav"}

var ErrUnsupported = errors.New("unsupported audio format")

// Signal is a mono PCM signal with amplitudes in [-1, 1].
type Signal struct {
	Samples    []float64
	SampleRate int
}

func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Open picks a decoder from the file extension.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, f := range Formats {
		if f == ext {
			supported = true
		}
	}
	if !supported {
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupported, "%q", ext)
	}

	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "unable to decode %s", filepath.Base(path))
	}
	return streamer, format, nil
}

// Decode reads a whole file into memory as a mono signal.
func Decode(path string) (Signal, error) {
	streamer, format, err := Open(path)
	if nil != err {
		return Signal{}, err
	}
	defer streamer.Close()
	return Read(streamer, format)
}

// Read drains s, keeping the first channel.
func Read(s beep.Streamer, format beep.Format) (Signal, error) {
	hint := 0
	if ss, ok := s.(beep.StreamSeeker); ok {
		hint = ss.Len()
	}
	out := make([]float64, 0, hint)
	buf := make([][2]float64, 4096)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); nil != err {
		return Signal{}, errors.Wrap(err, "stream failed")
	}
	return Signal{Samples: out, SampleRate: int(format.SampleRate)}, nil
}
