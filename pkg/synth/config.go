// ABOUTME: Audio format configuration for the synthesis pipeline
// ABOUTME: Sample rate and bit depth, fixed per pipeline, with derived PCM range
package synth

const (
	// DefaultSampleRate is the CD-standard sampling rate in samples per second.
	DefaultSampleRate = 44100

	// DefaultBitDepth is the encoded sample width in bits.
	DefaultBitDepth = 16
)

// Config holds the audio format for a generation pipeline. It is set once at
// startup and never mutated; components capture it by value.
type Config struct {
	SampleRate int // samples per second
	BitDepth   int // bits per encoded integer sample
}

// DefaultConfig returns the standard 44.1kHz 16-bit configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		BitDepth:   DefaultBitDepth,
	}
}

// MaxSampleValue returns the largest integer magnitude an encoded sample can
// take: 2^(BitDepth-1) - 1.
func (c Config) MaxSampleValue() int {
	return 1<<(c.BitDepth-1) - 1
}
