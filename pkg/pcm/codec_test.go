// ABOUTME: Tests for the fixed-point PCM codec
// ABOUTME: Covers exact byte layout, clipping, truncation and round-trip accuracy
package pcm

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/tonefall/tonefall-go/pkg/synth"
)

func newTestCodec(t *testing.T) Codec {
	t.Helper()
	codec, err := New(synth.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return codec
}

func TestNewRejectsUnsupportedBitDepth(t *testing.T) {
	if _, err := New(synth.Config{SampleRate: 44100, BitDepth: 24}); err == nil {
		t.Error("expected error for 24-bit config")
	}
}

func TestEncodeExtremes(t *testing.T) {
	codec := newTestCodec(t)

	got := codec.Encode([]float64{1.0, -1.0, 0.0})

	// int16 values 32767, -32767, 0 in little-endian order.
	want := []byte{0xFF, 0x7F, 0x01, 0x80, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("expected % X, got % X", want, got)
	}
}

func TestEncodeClips(t *testing.T) {
	codec := newTestCodec(t)

	got := codec.Encode([]float64{2.5, -3.0})
	want := codec.Encode([]float64{1.0, -1.0})

	if !bytes.Equal(got, want) {
		t.Errorf("expected out-of-range samples to clip: % X vs % X", got, want)
	}
}

func TestEncodeTruncatesTowardZero(t *testing.T) {
	codec := newTestCodec(t)

	// 0.5 * 32767 = 16383.5 truncates to 16383, not 16384.
	got := codec.Encode([]float64{0.5, -0.5})

	if v := int16(uint16(got[0]) | uint16(got[1])<<8); v != 16383 {
		t.Errorf("expected 16383, got %d", v)
	}
	if v := int16(uint16(got[2]) | uint16(got[3])<<8); v != -16383 {
		t.Errorf("expected -16383, got %d", v)
	}
}

func TestEncodeOutputLength(t *testing.T) {
	codec := newTestCodec(t)
	if got := codec.Encode(make([]float64, 7)); len(got) != 14 {
		t.Errorf("expected 14 bytes, got %d", len(got))
	}
}

func TestDecodeOddLength(t *testing.T) {
	codec := newTestCodec(t)
	_, err := codec.Decode([]byte{0x00, 0x01, 0x02})
	if !errors.Is(err, ErrMalformedBuffer) {
		t.Errorf("expected ErrMalformedBuffer, got %v", err)
	}
}

func TestDecodeExtremes(t *testing.T) {
	codec := newTestCodec(t)

	samples, err := codec.Decode([]byte{0xFF, 0x7F, 0x01, 0x80, 0x00, 0x00})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []float64{1.0, -1.0, 0.0}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], samples[i])
		}
	}
}

func TestDecodeMostNegativeValue(t *testing.T) {
	codec := newTestCodec(t)

	// -32768 is never produced by Encode but decodes slightly below -1.
	samples, err := codec.Decode([]byte{0x00, 0x80})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if samples[0] >= -1 {
		t.Errorf("expected value below -1, got %v", samples[0])
	}
	if samples[0] < -1.0001 {
		t.Errorf("value too far below -1: %v", samples[0])
	}
}

func TestRoundTripWithinOneQuantizationStep(t *testing.T) {
	codec := newTestCodec(t)
	cfg := synth.Config{SampleRate: 4000, BitDepth: 16}
	step := 1.0 / float64(cfg.MaxSampleValue())

	input := cfg.Sine(440, 1, 0.25)
	decoded, err := codec.Decode(codec.Encode(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != len(input) {
		t.Fatalf("length mismatch: %d vs %d", len(decoded), len(input))
	}

	for i := range input {
		if diff := math.Abs(decoded[i] - input[i]); diff > step {
			t.Fatalf("sample %d drifted by %v, more than one quantization step %v", i, diff, step)
		}
	}
}
