package analysis

import (
	"context"
	"math"
	"math/cmplx"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"git.lost.host/meutraa/handrhythm/internal/game"
)

type spectrumFunc func(frame, dst []float64)

// bandSpectrum approximates a magnitude spectrum by the root of the energy
// in len(dst) equal index ranges of the raw frame.
func bandSpectrum(frame, dst []float64) {
	n := len(dst)
	for band := range dst {
		start := band * len(frame) / n
		end := (band + 1) * len(frame) / n
		energy := 0.0
		for _, s := range frame[start:end] {
			energy += s * s
		}
		dst[band] = math.Sqrt(energy)
	}
}

func fftSpectrum(size int) spectrumFunc {
	fft := fourier.NewFFT(size)
	var coeffs []complex128
	return func(frame, dst []float64) {
		coeffs = fft.Coefficients(coeffs, frame)
		for i := range dst {
			dst[i] = cmplx.Abs(coeffs[i])
		}
	}
}

// OnsetStrength is the positive spectral flux of every full frame.
func OnsetStrength(ctx context.Context, samples []float64, p Params) ([]float64, error) {
	if len(samples) < p.FrameSize {
		return nil, nil
	}
	frames := (len(samples) - p.FrameSize) / p.HopSize

	spectrum := spectrumFunc(bandSpectrum)
	if p.Spectrum == SpectrumFFT {
		spectrum = fftSpectrum(p.FrameSize)
	}

	bands := p.FrameSize / 2
	prev := make([]float64, bands)
	cur := make([]float64, bands)
	strength := make([]float64, frames)

	for i := 0; i < frames; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); nil != err {
				return nil, err
			}
		}
		offset := i * p.HopSize
		spectrum(samples[offset:offset+p.FrameSize], cur)

		flux := 0.0
		for band := range cur {
			if d := cur[band] - prev[band]; d > 0 {
				flux += d
			}
		}
		strength[i] = flux
		prev, cur = cur, prev
	}
	return strength, nil
}

// PickOnsets keeps strict local maxima of the flux above the adaptive
// threshold. Intensity saturates at twice the threshold.
func PickOnsets(strength []float64, sampleRate int, p Params) []game.Beat {
	if len(strength) == 0 {
		return nil
	}
	threshold := stat.Mean(strength, nil) * p.ThresholdMultiplier

	beats := []game.Beat{}
	for i := 1; i < len(strength)-1; i++ {
		s := strength[i]
		if s > strength[i-1] && s > strength[i+1] && s > threshold {
			seconds := float64(i*p.HopSize) / float64(sampleRate)
			beats = append(beats, game.Beat{
				Time:      time.Duration(seconds * float64(time.Second)),
				Intensity: math.Min(1, s/(threshold*2)),
			})
		}
	}
	return beats
}

// TempoGrid lays evenly spaced full intensity beats over the track.
func TempoGrid(bpm float64, duration time.Duration) []game.Beat {
	if bpm <= 0 {
		return nil
	}
	interval := 60 / bpm * float64(time.Second)
	n := int(math.Floor(float64(duration) / interval))
	beats := make([]game.Beat, n)
	for i := range beats {
		beats[i] = game.Beat{
			Time:      time.Duration(float64(i) * interval),
			Intensity: 1,
		}
	}
	return beats
}
