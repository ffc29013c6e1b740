package hand

import (
	"math"
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// KeyboardSource steers one virtual fingertip with the arrow keys or WASD.
// Escape or q asks the game to quit.
type KeyboardSource struct {
	Step float64 // Screen fraction moved per key press

	mu   sync.Mutex
	x, y float64
	keys <-chan keyboard.KeyEvent
	quit chan struct{}
	once sync.Once
}

func NewKeyboardSource() (*KeyboardSource, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	k := newKeyboardSource()
	k.keys = keys
	go k.listen()
	return k, nil
}

func newKeyboardSource() *KeyboardSource {
	return &KeyboardSource{Step: 0.04, x: 0.5, y: 0.5, quit: make(chan struct{})}
}

func (k *KeyboardSource) listen() {
	for ev := range k.keys {
		if nil != ev.Err {
			continue
		}
		if !k.Press(ev.Rune, ev.Key) {
			return
		}
	}
}

// Press applies one key event and reports whether to keep listening.
func (k *KeyboardSource) Press(r rune, key keyboard.Key) bool {
	dx, dy := 0.0, 0.0
	switch {
	case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || r == 'q':
		k.once.Do(func() { close(k.quit) })
		return false
	case key == keyboard.KeyArrowLeft || r == 'a':
		dx = -k.Step
	case key == keyboard.KeyArrowRight || r == 'd':
		dx = k.Step
	case key == keyboard.KeyArrowUp || r == 'w':
		dy = -k.Step
	case key == keyboard.KeyArrowDown || r == 's':
		dy = k.Step
	}
	k.mu.Lock()
	k.x = clamp(k.x + dx)
	k.y = clamp(k.y + dy)
	k.mu.Unlock()
	return true
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (k *KeyboardSource) Latest() []Hand {
	k.mu.Lock()
	defer k.mu.Unlock()
	return []Hand{Fingertip(k.x, k.y)}
}

// Quit is closed when the player asks to leave.
func (k *KeyboardSource) Quit() <-chan struct{} {
	return k.quit
}

func (k *KeyboardSource) Close() error {
	if nil == k.keys {
		return nil
	}
	return keyboard.Close()
}
