// Package cache remembers analysis results by audio content so replays
// skip decoding and onset detection.
package cache

import "git.lost.host/meutraa/handrhythm/internal/analysis"

type Store interface {
	Init() error
	Deinit()

	// Save the analysis of the audio whose content hashes to sum
	Save(sum string, result *analysis.Result) error

	// Load a previous analysis, nil when there is none
	Load(sum string) (*analysis.Result, error)
}
