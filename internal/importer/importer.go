// ABOUTME: Compressed-audio import into the synthesis pipeline
// ABOUTME: Decodes MP3 and FLAC files to per-channel float64 samples
// Package importer loads compressed audio files as real-valued sample
// channels so existing material can run through the same normalize, mix and
// encode operations as synthesized signals.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"

	"github.com/tonefall/tonefall-go/pkg/pcm"
	"github.com/tonefall/tonefall-go/pkg/synth"
)

// Result holds decoded audio as per-channel samples in [-1, 1].
type Result struct {
	SampleRate int
	Channels   [][]float64
}

// Load decodes an audio file, dispatching on its extension. MP3 and FLAC
// are supported.
func Load(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return loadMP3(path)
	case ".flac":
		return loadFLAC(path)
	}
	return Result{}, fmt.Errorf("importer: unsupported file type %q (supported: .mp3, .flac)", filepath.Ext(path))
}

// loadMP3 decodes an MP3 file. go-mp3 always emits 16-bit little-endian
// stereo PCM, so the output goes through the same codec as our own buffers.
func loadMP3(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return Result{}, fmt.Errorf("importer: decode %s: %w", path, err)
	}

	data, err := io.ReadAll(dec)
	if err != nil {
		return Result{}, fmt.Errorf("importer: read %s: %w", path, err)
	}

	codec, err := pcm.New(synth.Config{SampleRate: dec.SampleRate(), BitDepth: synth.DefaultBitDepth})
	if err != nil {
		return Result{}, err
	}
	samples, err := codec.Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("importer: decode PCM from %s: %w", path, err)
	}

	channels, err := synth.SeparateChannels(samples, 2)
	if err != nil {
		return Result{}, fmt.Errorf("importer: separate channels from %s: %w", path, err)
	}

	return Result{SampleRate: dec.SampleRate(), Channels: channels}, nil
}

// loadFLAC decodes a FLAC file frame by frame, scaling integer samples by
// the source bit depth.
func loadFLAC(path string) (Result, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("importer: parse %s: %w", path, err)
	}
	defer stream.Close()

	info := stream.Info
	numChannels := int(info.NChannels)
	maxValue := float64(int64(1)<<(info.BitsPerSample-1) - 1)

	channels := make([][]float64, numChannels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("importer: parse frame of %s: %w", path, err)
		}

		for c, sub := range frame.Subframes {
			if c >= numChannels {
				break
			}
			for _, s := range sub.Samples {
				channels[c] = append(channels[c], float64(s)/maxValue)
			}
		}
	}

	return Result{SampleRate: int(info.SampleRate), Channels: channels}, nil
}
