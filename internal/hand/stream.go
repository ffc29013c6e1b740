package hand

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync"

	"git.lost.host/meutraa/handrhythm/internal/log"
	"github.com/pkg/errors"
)

const maxLine = 1 << 20

// StreamSource reads newline delimited JSON snapshots from an external
// detector, for example
//
//	[[{"x":0.5,"y":0.4,"z":0}, ...21 landmarks], ...hands]
//
// Only the most recent snapshot is kept.
type StreamSource struct {
	Log *log.Logger

	r      io.Reader
	mu     sync.Mutex
	latest []Hand
	err    error
	done   chan struct{}
}

// IsStdin reports whether path names standard input. kingpin only takes
// "-" as a flag value in the --hands=- form, so "stdin" is the usual name.
func IsStdin(path string) bool {
	return path == "stdin" || path == "-"
}

// OpenStream opens path, or standard input when IsStdin(path).
func OpenStream(path string, l *log.Logger) (*StreamSource, error) {
	if IsStdin(path) {
		return NewStreamSource(os.Stdin, l), nil
	}
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open hand stream")
	}
	return NewStreamSource(f, l), nil
}

func NewStreamSource(r io.Reader, l *log.Logger) *StreamSource {
	if nil == l {
		l = log.Default()
	}
	s := &StreamSource{Log: l, r: r, done: make(chan struct{})}
	go s.read()
	return s
}

func (s *StreamSource) read() {
	defer close(s.done)
	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var hands []Hand
		if err := json.Unmarshal(b, &hands); nil != err {
			s.Log.Warnf("skipping malformed hand snapshot on line %d: %v", line, err)
			continue
		}
		s.mu.Lock()
		s.latest = hands
		s.mu.Unlock()
	}
	if err := scanner.Err(); nil != err {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.Log.Errorf("hand stream stopped: %v", err)
	}
}

func (s *StreamSource) Latest() []Hand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Err is the read error that ended the stream, if any.
func (s *StreamSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed once the stream has been fully consumed.
func (s *StreamSource) Done() <-chan struct{} {
	return s.done
}

func (s *StreamSource) Close() error {
	if c, ok := s.r.(io.Closer); ok && s.r != os.Stdin {
		return c.Close()
	}
	return nil
}
