// ABOUTME: Waveform synthesis package providing generators and signal operations
// ABOUTME: Covers time-point generation, sine/square/sawtooth waves, mixing and channel interleaving
// Package synth generates digital audio signals as real-valued sample slices.
//
// All generation runs through an explicit Config carrying the sample rate and
// bit depth, so pipelines with different rates can coexist in one process:
//
//	cfg := synth.DefaultConfig()
//	left := cfg.Sawtooth(220, 0.9, 30)
//	right := cfg.Sawtooth(330, 0.7, 30)
//	merged, err := synth.MergeChannels([][]float64{left, right})
//
// Samples are conventionally in [-1, 1] but are not clamped until encoding;
// see the pcm package for the fixed-point conversion.
package synth
