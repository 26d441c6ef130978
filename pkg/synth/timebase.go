// ABOUTME: Sample time-point generation
// ABOUTME: Produces evenly spaced time values spanning a duration at the configured rate
package synth

import "math"

// SampleTimePoints returns N evenly spaced time values in seconds spanning
// [0, duration] inclusive, where N = round(duration * SampleRate). The point
// count is rounded, not truncated, so a non-integer duration yields the
// nearest whole sample count. A duration of zero yields an empty slice.
func (c Config) SampleTimePoints(duration float64) []float64 {
	n := int(math.Round(duration * float64(c.SampleRate)))
	if n <= 0 {
		return nil
	}

	points := make([]float64, n)
	if n == 1 {
		return points
	}

	step := duration / float64(n-1)
	for i := range points {
		points[i] = float64(i) * step
	}
	// Land the final point exactly on the duration.
	points[n-1] = duration

	return points
}
