package game

// HandCursor is one detected hand's fingertip projected into canvas space.
// It only lives for a single frame.
type HandCursor struct {
	X, Y      float64
	Tracking  bool
	HandIndex int
}
