// ABOUTME: Continuous waveform chunk generation for streaming
// ABOUTME: Produces successive 20ms PCM16LE chunks with a running frame index
package server

import (
	"github.com/tonefall/tonefall-go/pkg/pcm"
	"github.com/tonefall/tonefall-go/pkg/synth"
)

const (
	// DefaultChannels is the stream channel count.
	DefaultChannels = 2

	// ChunkDurationMs is the chunk length in milliseconds.
	ChunkDurationMs = 20
)

// Engine generates a continuous waveform as successive PCM16LE chunks. A
// running frame index keeps the phase seamless across chunk boundaries, so
// concatenated chunks form one uninterrupted signal.
type Engine struct {
	cfg       synth.Config
	codec     pcm.Codec
	kind      synth.Kind
	frequency float64
	amplitude float64
	channels  int

	chunkFrames int
	frameIndex  uint64
}

// NewEngine creates a chunk generator for the given waveform.
func NewEngine(cfg synth.Config, kind synth.Kind, frequency, amplitude float64) (*Engine, error) {
	codec, err := pcm.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:         cfg,
		codec:       codec,
		kind:        kind,
		frequency:   frequency,
		amplitude:   amplitude,
		channels:    DefaultChannels,
		chunkFrames: cfg.SampleRate * ChunkDurationMs / 1000,
	}, nil
}

// ChunkBytes returns the encoded size of one chunk.
func (e *Engine) ChunkBytes() int {
	return e.chunkFrames * e.channels * pcm.SampleWidth
}

// NextChunk generates the next chunk of the stream. The waveform value for
// each frame is duplicated into every channel.
func (e *Engine) NextChunk() []byte {
	samples := make([]float64, e.chunkFrames*e.channels)
	for i := 0; i < e.chunkFrames; i++ {
		t := float64(e.frameIndex+uint64(i)) / float64(e.cfg.SampleRate)
		v := synth.Value(e.kind, e.frequency, e.amplitude, t)
		for c := 0; c < e.channels; c++ {
			samples[i*e.channels+c] = v
		}
	}
	e.frameIndex += uint64(e.chunkFrames)

	return e.codec.Encode(samples)
}
