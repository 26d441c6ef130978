// ABOUTME: Tests for signal operations
// ABOUTME: Covers mixing, normalization errors and channel merge/separate round-trips
package synth

import (
	"errors"
	"math"
	"testing"
)

func TestMixSumsElementWise(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{10, 20, 30}

	got := Mix(a, b)
	want := []float64{11, 22, 33}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMixLeavesInputsUntouched(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{3, 4}
	Mix(a, b)

	if a[0] != 1 || a[1] != 2 || b[0] != 3 || b[1] != 4 {
		t.Error("Mix mutated its inputs")
	}
}

func TestMixEmpty(t *testing.T) {
	if got := Mix(); got != nil {
		t.Errorf("expected nil for empty mix, got %v", got)
	}
}

func TestNormalizePeak(t *testing.T) {
	samples := []float64{0.1, -0.5, 0.25}

	got, err := Normalize(samples, 0.89)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	var peak float64
	for _, s := range got {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-0.89) > 1e-12 {
		t.Errorf("expected peak 0.89, got %v", peak)
	}
}

func TestNormalizePreservesShape(t *testing.T) {
	samples := []float64{0.2, -0.4, 0.1}

	got, err := Normalize(samples, 1)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Ratios between samples survive scaling.
	if math.Abs(got[0]/got[1]-samples[0]/samples[1]) > 1e-12 {
		t.Errorf("sample ratio changed: %v vs %v", got[0]/got[1], samples[0]/samples[1])
	}
}

func TestNormalizeAllZero(t *testing.T) {
	_, err := Normalize([]float64{0, 0, 0}, 0.89)
	if !errors.Is(err, ErrDegenerateSignal) {
		t.Errorf("expected ErrDegenerateSignal, got %v", err)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil, 0.89)
	if !errors.Is(err, ErrDegenerateSignal) {
		t.Errorf("expected ErrDegenerateSignal, got %v", err)
	}
}

func TestMergeChannelsInterleaves(t *testing.T) {
	channels := [][]float64{
		{1, 2, 3},
		{10, 20, 30},
	}

	got, err := MergeChannels(channels)
	if err != nil {
		t.Fatalf("MergeChannels failed: %v", err)
	}

	want := []float64{1, 10, 2, 20, 3, 30}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMergeChannelsLengthMismatch(t *testing.T) {
	_, err := MergeChannels([][]float64{{1, 2}, {1, 2, 3}})
	if !errors.Is(err, ErrChannelLengthMismatch) {
		t.Errorf("expected ErrChannelLengthMismatch, got %v", err)
	}
}

func TestSeparateChannelsInverse(t *testing.T) {
	left := []float64{0.1, 0.2, 0.3, 0.4}
	right := []float64{-0.1, -0.2, -0.3, -0.4}

	merged, err := MergeChannels([][]float64{left, right})
	if err != nil {
		t.Fatalf("MergeChannels failed: %v", err)
	}

	channels, err := SeparateChannels(merged, 2)
	if err != nil {
		t.Fatalf("SeparateChannels failed: %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}

	for j := range left {
		if channels[0][j] != left[j] {
			t.Fatalf("left channel frame %d: expected %v, got %v", j, left[j], channels[0][j])
		}
		if channels[1][j] != right[j] {
			t.Fatalf("right channel frame %d: expected %v, got %v", j, right[j], channels[1][j])
		}
	}
}

func TestSeparateChannelsNotDivisible(t *testing.T) {
	_, err := SeparateChannels([]float64{1, 2, 3, 4, 5}, 2)
	if !errors.Is(err, ErrNotDivisible) {
		t.Errorf("expected ErrNotDivisible, got %v", err)
	}
}

func TestSeparateChannelsInvalidCount(t *testing.T) {
	_, err := SeparateChannels([]float64{1, 2}, 0)
	if !errors.Is(err, ErrNotDivisible) {
		t.Errorf("expected ErrNotDivisible for zero channels, got %v", err)
	}
}
