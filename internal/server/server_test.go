// ABOUTME: Tests for the tone stream server
// ABOUTME: Covers construction defaults and a live WebSocket stream session
package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tonefall/tonefall-go/pkg/synth"
)

func TestNewAppliesDefaults(t *testing.T) {
	srv, err := New(Config{Port: 8930, Name: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if srv.config.Waveform != synth.KindSine {
		t.Errorf("expected default sine waveform, got %s", srv.config.Waveform)
	}
	if srv.config.Frequency != 440 {
		t.Errorf("expected default frequency 440, got %v", srv.config.Frequency)
	}
	if srv.config.SampleRate != synth.DefaultSampleRate {
		t.Errorf("expected default sample rate, got %d", srv.config.SampleRate)
	}
	if srv.ClientCount() != 0 {
		t.Errorf("expected no clients, got %d", srv.ClientCount())
	}
}

func TestNewRejectsBadWaveform(t *testing.T) {
	// An engine for an unknown kind still generates (Value falls back to
	// sine), so construction succeeds; this documents the fallback.
	srv, err := New(Config{Port: 8930, Name: "test", Waveform: synth.Kind("noise")}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if srv == nil {
		t.Fatal("expected server")
	}
}

func TestStreamSendsHeaderAndChunks(t *testing.T) {
	srv, err := New(Config{
		Port:       0,
		Name:       "stream-test",
		SampleRate: 8000,
		Waveform:   synth.KindSine,
		Frequency:  440,
		Amplitude:  0.5,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Drive the handler directly through httptest instead of binding a port.
	ts := httptest.NewServer(http.HandlerFunc(srv.handleStream))
	defer ts.Close()

	go srv.broadcastLoop()
	defer srv.Stop()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	msgType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read header failed: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Fatalf("expected text header, got message type %d", msgType)
	}

	var info StreamInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if info.SampleRate != 8000 || info.Channels != DefaultChannels || info.BitDepth != 16 {
		t.Errorf("unexpected stream info: %+v", info)
	}

	msgType, chunk, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read chunk failed: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("expected binary chunk, got message type %d", msgType)
	}
	if len(chunk) != srv.engine.ChunkBytes() {
		t.Errorf("expected %d byte chunk, got %d", srv.engine.ChunkBytes(), len(chunk))
	}
}

// freePort reserves an ephemeral port and releases it for the server to bind.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestStartReturnsAfterStopWithLiveClient(t *testing.T) {
	port := freePort(t)

	srv, err := New(Config{
		Port:       port,
		Name:       "shutdown-test",
		SampleRate: 8000,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Dial until the listener is up.
	url := fmt.Sprintf("ws://127.0.0.1:%d/stream", port)
	var conn *websocket.Conn
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("dial failed: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	defer conn.Close()

	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read header failed: %v", err)
	}

	// Stopping with the client still connected must unblock Start: the
	// hijacked WebSocket conn has to be closed by the server itself.
	srv.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop with a connected client")
	}

	if srv.ClientCount() != 0 {
		t.Errorf("expected no clients after shutdown, got %d", srv.ClientCount())
	}
}
