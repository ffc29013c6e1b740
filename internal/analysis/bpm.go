package analysis

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
)

// chunkEnergies returns the mean squared amplitude of consecutive chunks.
// The last chunk may be short.
func chunkEnergies(ctx context.Context, samples []float64, chunk int) ([]float64, error) {
	energies := make([]float64, 0, len(samples)/chunk+1)
	for i := 0; i < len(samples); i += chunk {
		if len(energies)%1024 == 0 {
			if err := ctx.Err(); nil != err {
				return nil, err
			}
		}
		end := i + chunk
		if end > len(samples) {
			end = len(samples)
		}
		energy := 0.0
		for _, s := range samples[i:end] {
			energy += s * s
		}
		energies = append(energies, energy/float64(end-i))
	}
	return energies, nil
}

// energyPeaks lists strict local maxima above ratio of the loudest chunk.
func energyPeaks(energies []float64, ratio float64) []int {
	if len(energies) < 3 {
		return nil
	}
	threshold := floats.Max(energies) * ratio
	peaks := []int{}
	for i := 1; i < len(energies)-1; i++ {
		if energies[i] > energies[i-1] && energies[i] > energies[i+1] && energies[i] > threshold {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// modalGap is the most common distance between consecutive peaks. On a tie
// the gap seen first wins.
func modalGap(peaks []int) (int, bool) {
	if len(peaks) < 2 {
		return 0, false
	}
	counts := map[int]int{}
	order := []int{}
	for i := 1; i < len(peaks); i++ {
		gap := peaks[i] - peaks[i-1]
		if counts[gap] == 0 {
			order = append(order, gap)
		}
		counts[gap]++
	}
	best, bestCount := order[0], 0
	for _, gap := range order {
		if counts[gap] > bestCount {
			best, bestCount = gap, counts[gap]
		}
	}
	return best, true
}

// EstimateBPM guesses the tempo from the spacing of energy peaks. The
// result is clamped to [MinBPM, MaxBPM].
func EstimateBPM(ctx context.Context, samples []float64, sampleRate int, p Params) (float64, error) {
	chunk := int(math.Floor(float64(sampleRate)*p.ChunkDuration.Seconds() + 1e-9))
	if chunk < 1 {
		chunk = 1
	}
	energies, err := chunkEnergies(ctx, samples, chunk)
	if nil != err {
		return 0, err
	}

	bpm := p.DefaultBPM
	if gap, ok := modalGap(energyPeaks(energies, p.PeakRatio)); ok {
		chunkSeconds := float64(chunk) / float64(sampleRate)
		bpm = 60 / (float64(gap) * chunkSeconds)
	}
	return math.Max(p.MinBPM, math.Min(p.MaxBPM, bpm)), nil
}
