package analysis

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/handrhythm/internal/audio"
)

// DecodeError means the file could not be read as audio. Retrying with the
// same file will not help, the user has to pick another one.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode %s, supported formats are %s: %v",
		e.Path, strings.Join(audio.Formats, ", "), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AnalysisError is an unexpected failure while estimating tempo or onsets.
// The pipeline is pure so the same input may be retried.
type AnalysisError struct {
	Stage string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed during %s: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
