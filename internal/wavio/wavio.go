// ABOUTME: WAV container reader/writer over go-audio
// ABOUTME: Bridges interleaved PCM16LE byte buffers to the file codec contract
// Package wavio writes and reads WAV files. It accepts the container
// contract used by the synthesis pipeline: channel count, sample width,
// frame rate and a completed buffer of interleaved fixed-point samples.
package wavio

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Format describes the container parameters for one file.
type Format struct {
	Channels    int
	SampleWidth int // bytes per sample
	FrameRate   int // frames per second
}

// WriteFile writes interleaved little-endian PCM bytes to path as a WAV
// file. Only 2-byte samples are supported.
func WriteFile(path string, format Format, data []byte) error {
	if format.SampleWidth != 2 {
		return fmt.Errorf("wavio: unsupported sample width %d (supported: 2)", format.SampleWidth)
	}
	if len(data)%(format.SampleWidth*format.Channels) != 0 {
		return fmt.Errorf("wavio: %d bytes is not a whole number of %d-channel frames", len(data), format.Channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, format.FrameRate, 8*format.SampleWidth, format.Channels, 1)

	ints := make([]int, len(data)/2)
	for i := range ints {
		ints[i] = int(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.FrameRate,
		},
		SourceBitDepth: 16,
		Data:           ints,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a 16-bit WAV file back into its format and interleaved
// little-endian PCM bytes.
func ReadFile(path string) (Format, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return Format{}, nil, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Format{}, nil, fmt.Errorf("wavio: read %s: %w", path, err)
	}
	if dec.BitDepth != 16 {
		return Format{}, nil, fmt.Errorf("wavio: %s has unsupported bit depth %d", path, dec.BitDepth)
	}

	format := Format{
		Channels:    int(dec.NumChans),
		SampleWidth: 2,
		FrameRate:   int(dec.SampleRate),
	}

	data := make([]byte, len(buf.Data)*2)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(v)))
	}
	return format, data, nil
}
