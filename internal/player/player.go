// ABOUTME: Local audio playback of PCM16LE buffers
// ABOUTME: Plays encoded sample buffers through the default device using oto
package player

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays interleaved PCM16LE byte buffers through the default audio
// device. oto allows a single context per process, so the format is fixed
// at construction.
type Player struct {
	otoCtx     *oto.Context
	sampleRate int
	channels   int
	volume     int
	muted      bool
}

// New creates a player for the given format.
func New(sampleRate, channels int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("player: create oto context: %w", err)
	}
	<-readyChan

	return &Player{
		otoCtx:     ctx,
		sampleRate: sampleRate,
		channels:   channels,
		volume:     100,
	}, nil
}

// Play plays a complete PCM buffer, blocking until playback finishes.
func (p *Player) Play(data []byte) error {
	scaled := applyVolume(data, p.volume, p.muted)

	pl := p.otoCtx.NewPlayer(bytes.NewReader(scaled))
	pl.Play()
	for pl.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return pl.Close()
}

// SetVolume sets the volume (0-100).
func (p *Player) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	p.volume = volume
}

// SetMuted sets the mute state.
func (p *Player) SetMuted(muted bool) {
	p.muted = muted
}

// applyVolume scales int16 PCM samples with clipping protection. A volume
// of 100 returns the buffer unchanged.
func applyVolume(data []byte, volume int, muted bool) []byte {
	multiplier := volumeMultiplier(volume, muted)
	if multiplier == 1.0 {
		return data
	}

	// Copy first so a trailing odd byte survives the sample loop.
	scaled := make([]byte, len(data))
	copy(scaled, data)
	for i := 0; i+1 < len(data); i += 2 {
		s := int16(binary.LittleEndian.Uint16(data[i:]))
		v := int32(float64(s) * multiplier)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(scaled[i:], uint16(int16(v)))
	}
	return scaled
}

// volumeMultiplier converts volume and mute state to a linear factor.
func volumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
