// Package testdata builds deterministic signals and fixtures for tests.
package testdata

import (
	"math"
	"math/rand"
	"time"
)

// Silence returns d worth of zero samples.
func Silence(sampleRate int, d time.Duration) []float64 {
	return make([]float64, samplesFor(sampleRate, d))
}

// Tone repeats one precomputed period so every chunk of a whole number of
// periods has bit-identical energy.
func Tone(sampleRate, period int, amp float64, d time.Duration) []float64 {
	table := make([]float64, period)
	for i := range table {
		table[i] = amp * math.Sin(2*math.Pi*float64(i)/float64(period))
	}
	out := make([]float64, samplesFor(sampleRate, d))
	for i := range out {
		out[i] = table[i%period]
	}
	return out
}

// ClickTrack places an identical decaying click every beat, starting at
// offset.
func ClickTrack(sampleRate int, bpm float64, offset, d time.Duration) []float64 {
	out := make([]float64, samplesFor(sampleRate, d))
	click := make([]float64, sampleRate/50)
	for i := range click {
		click[i] = 0.9 * math.Exp(-float64(i)/float64(len(click)/4))
	}
	for _, at := range BeatTimes(bpm, offset, d) {
		start := samplesFor(sampleRate, at)
		for i, v := range click {
			if start+i < len(out) {
				out[start+i] = v
			}
		}
	}
	return out
}

// NoiseBursts places a seeded white noise burst every beat, starting at
// offset, over silence.
func NoiseBursts(sampleRate int, bpm float64, offset, burst, d time.Duration, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, samplesFor(sampleRate, d))
	n := samplesFor(sampleRate, burst)
	for _, at := range BeatTimes(bpm, offset, d) {
		start := samplesFor(sampleRate, at)
		for i := 0; i < n && start+i < len(out); i++ {
			out[start+i] = r.Float64()*1.6 - 0.8
		}
	}
	return out
}

// Ramps starts a linear fade in lasting rise every beat, starting at
// offset, and cuts it to silence at full amplitude.
func Ramps(sampleRate int, bpm float64, offset, rise, d time.Duration, amp float64) []float64 {
	out := make([]float64, samplesFor(sampleRate, d))
	n := samplesFor(sampleRate, rise)
	for _, at := range BeatTimes(bpm, offset, d) {
		start := samplesFor(sampleRate, at)
		for i := 0; i < n && start+i < len(out); i++ {
			out[start+i] = amp * float64(i+1) / float64(n)
		}
	}
	return out
}

// BeatTimes lists the beat instants of a steady tempo inside d.
func BeatTimes(bpm float64, offset, d time.Duration) []time.Duration {
	interval := time.Duration(float64(time.Minute) / bpm)
	times := []time.Duration{}
	for at := offset; at < d; at += interval {
		times = append(times, at)
	}
	return times
}

func samplesFor(sampleRate int, d time.Duration) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}
