// ABOUTME: Entry point for the tone stream server
// ABOUTME: Parses CLI flags, sets up zap logging and runs the WebSocket server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tonefall/tonefall-go/internal/server"
	"github.com/tonefall/tonefall-go/internal/version"
	"github.com/tonefall/tonefall-go/pkg/synth"
)

var (
	port      = flag.Int("port", 8930, "WebSocket server port")
	name      = flag.String("name", "", "Server friendly name (default: hostname-tonefall-server)")
	debug     = flag.Bool("debug", false, "Enable debug logging")
	noMDNS    = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
	rate      = flag.Int("rate", synth.DefaultSampleRate, "Sampling rate in Hz")
	waveform  = flag.String("wave", "sine", "Waveform to stream: sine, square or sawtooth")
	frequency = flag.Float64("freq", 440, "Stream frequency in Hz")
	amplitude = flag.Float64("amp", 0.5, "Stream amplitude (0-1)")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("product", version.Product), zap.String("version", version.Version))

	serverName := *name
	if serverName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serverName = fmt.Sprintf("%s-tonefall-server", hostname)
	}

	srv, err := server.New(server.Config{
		Port:       *port,
		Name:       serverName,
		EnableMDNS: !*noMDNS,
		SampleRate: *rate,
		Waveform:   synth.Kind(*waveform),
		Frequency:  *frequency,
		Amplitude:  *amplitude,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
