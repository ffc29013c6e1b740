// Package hand adapts hand pose detectors to per frame fingertip cursors.
package hand

import "git.lost.host/meutraa/handrhythm/internal/game"

// IndexTip is the index fingertip in the 21 point hand layout.
const IndexTip = 8

// Landmark is one keypoint in normalized [0,1] image coordinates.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Hand []Landmark

// Source is anything that can report the latest detected hands. Latest
// must not block waiting for fresh inference; a stale snapshot is fine.
type Source interface {
	Latest() []Hand
	Close() error
}

// Cursors projects each hand's index fingertip onto a width x height
// canvas. The camera image is mirrored so moving right moves the cursor
// right.
func Cursors(hands []Hand, width, height float64) []game.HandCursor {
	cursors := make([]game.HandCursor, 0, len(hands))
	for i, h := range hands {
		if len(h) <= IndexTip {
			continue
		}
		tip := h[IndexTip]
		cursors = append(cursors, game.HandCursor{
			X:         (1 - tip.X) * width,
			Y:         tip.Y * height,
			Tracking:  true,
			HandIndex: i,
		})
	}
	return cursors
}

// Fingertip builds a hand whose only meaningful landmark is the index tip,
// in already mirrored screen fractions.
func Fingertip(x, y float64) Hand {
	h := make(Hand, IndexTip+1)
	h[IndexTip] = Landmark{X: 1 - x, Y: y}
	return h
}

// StaticSource always reports the same hands.
type StaticSource struct {
	Hands []Hand
}

func (s *StaticSource) Latest() []Hand { return s.Hands }
func (s *StaticSource) Close() error   { return nil }
