// ABOUTME: Example compositions rendered from the synthesis pipeline
// ABOUTME: Perfect fifth panned stereo, just-intonation major chord and overtone demo
package songbook

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tonefall/tonefall-go/internal/wavio"
	"github.com/tonefall/tonefall-go/pkg/pcm"
	"github.com/tonefall/tonefall-go/pkg/synth"
)

// Just-intonation interval ratios relative to the root.
const (
	majorThirdRatio   = 5.0 / 4.0
	perfectFifthRatio = 3.0 / 2.0
)

const (
	rootFreq = 220 // A3

	fifthDuration = 30.0
	chordDuration = 10.0
	normTarget    = 0.89
)

// Track is one rendered composition: interleaved PCM16LE data plus the
// channel count the container needs.
type Track struct {
	Name     string
	Channels int
	Data     []byte
}

// Book renders the example compositions for one audio configuration.
type Book struct {
	cfg   synth.Config
	codec pcm.Codec
}

// New creates a songbook for the given configuration.
func New(cfg synth.Config) (*Book, error) {
	codec, err := pcm.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Book{cfg: cfg, codec: codec}, nil
}

// PerfectFifthPanned renders an A3 sawtooth in the left channel and its
// just-intonation fifth (ratio 3/2) in the right.
func (b *Book) PerfectFifthPanned() (Track, error) {
	left := b.cfg.Sawtooth(rootFreq, 0.9, fifthDuration)
	right := b.cfg.Sawtooth(rootFreq*perfectFifthRatio, 0.7, fifthDuration)

	merged, err := synth.MergeChannels([][]float64{left, right})
	if err != nil {
		return Track{}, fmt.Errorf("songbook: merge channels: %w", err)
	}

	return Track{
		Name:     "perfect_fifth_panned",
		Channels: 2,
		Data:     b.codec.Encode(merged),
	}, nil
}

// MajorChord renders a just-intonation major chord (root, third, fifth,
// octave) of equal-amplitude sines, normalized after summation.
func (b *Book) MajorChord() (Track, error) {
	chord := synth.Mix(
		b.cfg.Sine(rootFreq, 1, chordDuration),
		b.cfg.Sine(rootFreq*majorThirdRatio, 1, chordDuration),
		b.cfg.Sine(rootFreq*perfectFifthRatio, 1, chordDuration),
		b.cfg.Sine(rootFreq*2, 1, chordDuration),
	)

	normalized, err := synth.Normalize(chord, normTarget)
	if err != nil {
		return Track{}, fmt.Errorf("songbook: normalize chord: %w", err)
	}

	return Track{
		Name:     "major_chord",
		Channels: 1,
		Data:     b.codec.Encode(normalized),
	}, nil
}

// OvertoneDemo renders a fundamental enriched with its 2nd through 4th
// harmonics, each at 0.15^(n-1) of the root amplitude.
func (b *Book) OvertoneDemo() (Track, error) {
	overtones := make([]synth.Overtone, 0, 3)
	for n := 2; n <= 4; n++ {
		overtones = append(overtones, synth.Overtone{
			FreqMultiplier: float64(n),
			AmpMultiplier:  math.Pow(0.15, float64(n-1)),
		})
	}

	samples := b.cfg.SineWithOvertones(rootFreq, 1, overtones, chordDuration)
	normalized, err := synth.Normalize(samples, normTarget)
	if err != nil {
		return Track{}, fmt.Errorf("songbook: normalize overtones: %w", err)
	}

	return Track{
		Name:     "overtones",
		Channels: 1,
		Data:     b.codec.Encode(normalized),
	}, nil
}

// RenderAll writes every composition to dir as a WAV file and returns the
// paths written.
func (b *Book) RenderAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("songbook: create output dir: %w", err)
	}

	renders := []func() (Track, error){
		b.PerfectFifthPanned,
		b.MajorChord,
		b.OvertoneDemo,
	}

	var paths []string
	for _, render := range renders {
		track, err := render()
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, track.Name+".wav")
		format := wavio.Format{
			Channels:    track.Channels,
			SampleWidth: pcm.SampleWidth,
			FrameRate:   b.cfg.SampleRate,
		}
		if err := wavio.WriteFile(path, format, track.Data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
