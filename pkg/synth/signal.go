// ABOUTME: Signal operations: mixing, normalization and channel interleaving
// ABOUTME: Each operation returns a fresh slice; inputs are never mutated
package synth

import (
	"errors"
	"math"
)

var (
	// ErrDegenerateSignal reports an attempt to normalize an all-zero signal.
	ErrDegenerateSignal = errors.New("synth: cannot normalize an all-zero signal")

	// ErrChannelLengthMismatch reports a merge of unequal-length channels.
	ErrChannelLengthMismatch = errors.New("synth: channels have unequal lengths")

	// ErrNotDivisible reports a separate whose sample count is not a multiple
	// of the channel count.
	ErrNotDivisible = errors.New("synth: sample count not divisible by channel count")
)

// Mix sums the sequences element-wise. The result has the length of the
// first sequence; it is the caller's responsibility to normalize afterward
// if the sum exceeds [-1, 1].
func Mix(sequences ...[]float64) []float64 {
	if len(sequences) == 0 {
		return nil
	}
	mixed := make([]float64, len(sequences[0]))
	for _, seq := range sequences {
		n := len(seq)
		if n > len(mixed) {
			n = len(mixed)
		}
		for i := 0; i < n; i++ {
			mixed[i] += seq[i]
		}
	}
	return mixed
}

// Normalize scales samples so the peak absolute value equals target. An
// all-zero (or empty) input has no peak to scale and returns
// ErrDegenerateSignal instead of propagating a division by zero.
func Normalize(samples []float64, target float64) ([]float64, error) {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return nil, ErrDegenerateSignal
	}

	coeff := target / peak
	normalized := make([]float64, len(samples))
	for i, s := range samples {
		normalized[i] = coeff * s
	}
	return normalized, nil
}

// MergeChannels interleaves equal-length channels frame-major: output index
// j*k + c holds channels[c][j] for frame j of k channels.
func MergeChannels(channels [][]float64) ([]float64, error) {
	if len(channels) == 0 {
		return nil, nil
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, ErrChannelLengthMismatch
		}
	}

	merged := make([]float64, 0, frames*len(channels))
	for j := 0; j < frames; j++ {
		for _, ch := range channels {
			merged = append(merged, ch[j])
		}
	}
	return merged, nil
}

// SeparateChannels is the exact inverse of MergeChannels:
// channels[c][j] = samples[j*numChannels + c].
func SeparateChannels(samples []float64, numChannels int) ([][]float64, error) {
	if numChannels <= 0 || len(samples)%numChannels != 0 {
		return nil, ErrNotDivisible
	}

	frames := len(samples) / numChannels
	channels := make([][]float64, numChannels)
	for c := range channels {
		ch := make([]float64, frames)
		for j := 0; j < frames; j++ {
			ch[j] = samples[j*numChannels+c]
		}
		channels[c] = ch
	}
	return channels, nil
}
