package analysis

import "time"

// Spectrum selects how a frame is turned into per band magnitudes for the
// onset detector.
type Spectrum string

const (
	// SpectrumBands sums squared amplitude over equal index ranges of the
	// raw frame. It is not a frequency transform.
	SpectrumBands Spectrum = "bands"
	// SpectrumFFT uses real FFT bin magnitudes instead.
	SpectrumFFT Spectrum = "fft"
)

type Params struct {
	ChunkDuration time.Duration // Energy chunk for tempo estimation
	PeakRatio     float64       // Energy peaks must exceed this share of the maximum
	DefaultBPM    float64
	MinBPM        float64
	MaxBPM        float64

	FrameSize           int
	HopSize             int
	ThresholdMultiplier float64 // Onset flux must exceed this many times the mean
	MinOnsets           int     // Below this the tempo grid replaces the onsets
	Spectrum            Spectrum
}

func DefaultParams() Params {
	return Params{
		ChunkDuration:       100 * time.Millisecond,
		PeakRatio:           0.3,
		DefaultBPM:          120,
		MinBPM:              60,
		MaxBPM:              200,
		FrameSize:           2048,
		HopSize:             512,
		ThresholdMultiplier: 2,
		MinOnsets:           10,
		Spectrum:            SpectrumBands,
	}
}
