// ABOUTME: Waveform generators for sine, square, sawtooth and harmonic sums
// ABOUTME: Pure functions from frequency/amplitude/duration to sample slices
package synth

import (
	"fmt"
	"math"
)

// Kind selects a waveform shape.
type Kind string

const (
	KindSine     Kind = "sine"
	KindSquare   Kind = "square"
	KindSawtooth Kind = "sawtooth"
)

// Overtone describes one harmonic relative to a fundamental: its frequency
// as a multiple of the root frequency and its amplitude as a multiple of the
// root amplitude.
type Overtone struct {
	FreqMultiplier float64
	AmpMultiplier  float64
}

// Value evaluates a waveform of the given kind, frequency and amplitude at
// time t in seconds. An unknown kind evaluates as a sine.
func Value(kind Kind, freq, amplitude, t float64) float64 {
	switch kind {
	case KindSquare:
		return amplitude * sign(math.Sin(2*math.Pi*freq*t))
	case KindSawtooth:
		ft := freq * t
		return amplitude * 2 * (ft - math.Floor(0.5+ft))
	default:
		return amplitude * math.Sin(2*math.Pi*freq*t)
	}
}

// Sine generates amplitude * sin(2π * freq * t) over the duration.
func (c Config) Sine(freq, amplitude, duration float64) []float64 {
	samples := c.SampleTimePoints(duration)
	for i, t := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*t)
	}
	return samples
}

// Square generates amplitude * sgn(sin(2π * freq * t)). sign(0) is zero, so
// samples landing exactly on a zero crossing stay silent.
func (c Config) Square(freq, amplitude, duration float64) []float64 {
	samples := c.Sine(freq, 1, duration)
	for i, s := range samples {
		samples[i] = amplitude * sign(s)
	}
	return samples
}

// Sawtooth generates amplitude * 2 * (freq*t - floor(0.5 + freq*t)), a ramp
// in [-amplitude, amplitude) with period 1/freq.
func (c Config) Sawtooth(freq, amplitude, duration float64) []float64 {
	samples := c.SampleTimePoints(duration)
	for i, t := range samples {
		ft := freq * t
		samples[i] = amplitude * 2 * (ft - math.Floor(0.5+ft))
	}
	return samples
}

// SineWithOvertones generates a sine at rootFreq and adds one sine per
// overtone, each scaled by its frequency and amplitude multipliers.
func (c Config) SineWithOvertones(rootFreq, amplitude float64, overtones []Overtone, duration float64) []float64 {
	signal := c.Sine(rootFreq, amplitude, duration)
	for _, ot := range overtones {
		harmonic := c.Sine(rootFreq*ot.FreqMultiplier, amplitude*ot.AmpMultiplier, duration)
		for i := range signal {
			signal[i] += harmonic[i]
		}
	}
	return signal
}

// Generate dispatches on the waveform kind. Overtones only apply to sine;
// passing them with any other kind is an error.
func (c Config) Generate(kind Kind, freq, amplitude, duration float64, overtones []Overtone) ([]float64, error) {
	switch kind {
	case KindSine:
		if len(overtones) > 0 {
			return c.SineWithOvertones(freq, amplitude, overtones, duration), nil
		}
		return c.Sine(freq, amplitude, duration), nil
	case KindSquare:
		if len(overtones) > 0 {
			return nil, fmt.Errorf("synth: overtones are not supported for %s waves", kind)
		}
		return c.Square(freq, amplitude, duration), nil
	case KindSawtooth:
		if len(overtones) > 0 {
			return nil, fmt.Errorf("synth: overtones are not supported for %s waves", kind)
		}
		return c.Sawtooth(freq, amplitude, duration), nil
	}
	return nil, fmt.Errorf("synth: unknown waveform kind %q", kind)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
