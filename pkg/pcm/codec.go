// ABOUTME: Fixed-point PCM codec for real-valued sample sequences
// ABOUTME: Converts between float64 samples in [-1,1] and little-endian signed 16-bit buffers
// Package pcm converts real-valued audio samples to and from little-endian
// signed 16-bit PCM byte buffers.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tonefall/tonefall-go/pkg/synth"
)

// ErrMalformedBuffer reports a decode input whose byte length is not a
// multiple of the sample width.
var ErrMalformedBuffer = errors.New("pcm: byte length is not a multiple of the sample width")

// SampleWidth is the encoded sample size in bytes.
const SampleWidth = 2

// Codec converts between real-valued samples and fixed-point PCM. The scale
// factor is derived from the configured bit depth and never changes after
// construction.
type Codec struct {
	maxValue float64
}

// New creates a codec for the given configuration. Only 16-bit encoding is
// supported.
func New(cfg synth.Config) (Codec, error) {
	if cfg.BitDepth != 16 {
		return Codec{}, fmt.Errorf("pcm: unsupported bit depth %d (supported: 16)", cfg.BitDepth)
	}
	return Codec{maxValue: float64(cfg.MaxSampleValue())}, nil
}

// Encode clips each sample to [-1, 1], scales it by the maximum integer
// sample value and truncates toward zero (direct int16 cast semantics),
// emitting each value as a little-endian 2-byte integer. Clipping makes the
// operation total; there is no error path.
func (c Codec) Encode(samples []float64) []byte {
	buf := make([]byte, len(samples)*SampleWidth)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * c.maxValue)
		binary.LittleEndian.PutUint16(buf[i*SampleWidth:], uint16(v))
	}
	return buf
}

// Decode reads little-endian signed 16-bit integers and divides each by the
// maximum integer sample value. The most negative 16-bit value decodes to
// slightly below -1; the encoder never produces it, an accepted asymmetry of
// the fixed-point scheme.
func (c Codec) Decode(data []byte) ([]float64, error) {
	if len(data)%SampleWidth != 0 {
		return nil, ErrMalformedBuffer
	}

	samples := make([]float64, len(data)/SampleWidth)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*SampleWidth:]))
		samples[i] = float64(v) / c.maxValue
	}
	return samples, nil
}
