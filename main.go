// ABOUTME: Entry point for the tonefall CLI
// ABOUTME: Renders example compositions, plays tones, imports audio and runs the TUI
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tonefall/tonefall-go/internal/importer"
	"github.com/tonefall/tonefall-go/internal/player"
	"github.com/tonefall/tonefall-go/internal/songbook"
	"github.com/tonefall/tonefall-go/internal/ui"
	"github.com/tonefall/tonefall-go/internal/version"
	"github.com/tonefall/tonefall-go/internal/wavio"
	"github.com/tonefall/tonefall-go/pkg/pcm"
	"github.com/tonefall/tonefall-go/pkg/synth"
)

var (
	outDir     = flag.String("out", "output", "Output directory for rendered WAV files")
	sampleRate = flag.Int("rate", synth.DefaultSampleRate, "Sampling rate in Hz")

	play      = flag.Bool("play", false, "Play a single tone instead of rendering the songbook")
	waveform  = flag.String("wave", "sine", "Waveform for -play and -tui: sine, square or sawtooth")
	frequency = flag.Float64("freq", 440, "Tone frequency in Hz")
	amplitude = flag.Float64("amp", 0.5, "Tone amplitude (0-1)")
	duration  = flag.Float64("duration", 2, "Tone duration in seconds")

	importFile = flag.String("import", "", "Import an MP3 or FLAC file, normalize it and write it as WAV")
	runTUI     = flag.Bool("tui", false, "Run the interactive tone explorer")
)

func main() {
	flag.Parse()

	log.Printf("%s %s", version.Product, version.Version)

	cfg := synth.Config{SampleRate: *sampleRate, BitDepth: synth.DefaultBitDepth}

	switch {
	case *runTUI:
		if err := runExplorer(cfg); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
	case *importFile != "":
		if err := runImport(cfg, *importFile, *outDir); err != nil {
			log.Fatalf("Import error: %v", err)
		}
	case *play:
		if err := playTone(cfg, synth.Kind(*waveform), *frequency, *amplitude, *duration); err != nil {
			log.Fatalf("Playback error: %v", err)
		}
	default:
		if err := renderSongbook(cfg, *outDir); err != nil {
			log.Fatalf("Render error: %v", err)
		}
	}
}

// renderSongbook writes the example compositions into dir.
func renderSongbook(cfg synth.Config, dir string) error {
	book, err := songbook.New(cfg)
	if err != nil {
		return err
	}

	paths, err := book.RenderAll(dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		log.Printf("Wrote %s", path)
	}
	return nil
}

// playTone generates one tone and plays it through the default device.
func playTone(cfg synth.Config, kind synth.Kind, freq, amp, dur float64) error {
	samples, err := cfg.Generate(kind, freq, amp, dur, nil)
	if err != nil {
		return err
	}

	codec, err := pcm.New(cfg)
	if err != nil {
		return err
	}

	p, err := player.New(cfg.SampleRate, 1)
	if err != nil {
		return err
	}

	log.Printf("Playing %s at %.0f Hz for %.1fs", kind, freq, dur)
	return p.Play(codec.Encode(samples))
}

// runImport loads a compressed audio file, normalizes it and writes it back
// out as a 16-bit WAV next to the other rendered output.
func runImport(cfg synth.Config, path, dir string) error {
	result, err := importer.Load(path)
	if err != nil {
		return err
	}
	log.Printf("Imported %s: %d channels at %d Hz", path, len(result.Channels), result.SampleRate)

	normalized := make([][]float64, len(result.Channels))
	for i, ch := range result.Channels {
		normalized[i], err = synth.Normalize(ch, 0.89)
		if err != nil {
			return err
		}
	}

	merged, err := synth.MergeChannels(normalized)
	if err != nil {
		return err
	}

	// Encode at the file's own rate, not the CLI default.
	codec, err := pcm.New(synth.Config{SampleRate: result.SampleRate, BitDepth: cfg.BitDepth})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(dir, base+".wav")
	format := wavio.Format{
		Channels:    len(result.Channels),
		SampleWidth: pcm.SampleWidth,
		FrameRate:   result.SampleRate,
	}
	if err := wavio.WriteFile(outPath, format, codec.Encode(merged)); err != nil {
		return err
	}

	log.Printf("Wrote %s", outPath)
	return nil
}

// runExplorer runs the interactive TUI, playing requested tones through one
// shared output device.
func runExplorer(cfg synth.Config) error {
	codec, err := pcm.New(cfg)
	if err != nil {
		return err
	}

	p, err := player.New(cfg.SampleRate, 1)
	if err != nil {
		return err
	}

	control := ui.NewControl()
	prog := ui.Run(control)

	go func() {
		for req := range control.Requests {
			samples, err := cfg.Generate(req.Kind, req.Frequency, req.Amplitude, 1, nil)
			if err == nil {
				err = p.Play(codec.Encode(samples))
			}
			prog.Send(ui.PlayedMsg{Err: err})
		}
	}()

	_, err = prog.Run()
	close(control.Requests)
	return err
}
