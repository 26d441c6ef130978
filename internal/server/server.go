// ABOUTME: WebSocket tone stream server
// ABOUTME: Broadcasts continuously generated waveform chunks to connected clients
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tonefall/tonefall-go/internal/discovery"
	"github.com/tonefall/tonefall-go/pkg/synth"
)

// Config holds server configuration.
type Config struct {
	Port       int
	Name       string
	EnableMDNS bool

	SampleRate int
	Waveform   synth.Kind
	Frequency  float64
	Amplitude  float64
}

// StreamInfo is the JSON header sent to each client before the binary
// chunks begin.
type StreamInfo struct {
	ServerName string  `json:"server_name"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	BitDepth   int     `json:"bit_depth"`
	Waveform   string  `json:"waveform"`
	Frequency  float64 `json:"frequency"`
}

// Server streams generated waveform chunks over WebSocket.
type Server struct {
	config   Config
	serverID string
	log      *zap.Logger

	upgrader   websocket.Upgrader
	httpServer *http.Server
	engine     *Engine

	clients   map[string]*client
	clientsMu sync.RWMutex

	mdnsManager *discovery.Manager

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// client is one connected stream consumer.
type client struct {
	id       string
	conn     *websocket.Conn
	sendChan chan []byte
	done     chan struct{}
}

// New creates a server instance. Zero-valued waveform fields fall back to a
// 440Hz half-amplitude sine.
func New(config Config, log *zap.Logger) (*Server, error) {
	if config.SampleRate == 0 {
		config.SampleRate = synth.DefaultSampleRate
	}
	if config.Waveform == "" {
		config.Waveform = synth.KindSine
	}
	if config.Frequency == 0 {
		config.Frequency = 440
	}
	if config.Amplitude == 0 {
		config.Amplitude = 0.5
	}

	cfg := synth.Config{SampleRate: config.SampleRate, BitDepth: synth.DefaultBitDepth}
	engine, err := NewEngine(cfg, config.Waveform, config.Frequency, config.Amplitude)
	if err != nil {
		return nil, fmt.Errorf("server: create engine: %w", err)
	}

	return &Server{
		config:   config,
		serverID: uuid.New().String(),
		log:      log,
		upgrader: websocket.Upgrader{
			// Local-network streaming tool; accept all origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		engine:   engine,
		clients:  make(map[string]*client),
		stopChan: make(chan struct{}),
	}, nil
}

// Start runs the server until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info("server starting",
		zap.String("name", s.config.Name),
		zap.String("id", s.serverID),
		zap.Int("port", s.config.Port),
		zap.String("waveform", string(s.config.Waveform)),
		zap.Float64("frequency", s.config.Frequency))

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
		})
		if err := s.mdnsManager.Advertise(); err != nil {
			s.log.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}

	r := chi.NewRouter()
	r.Get("/stream", s.handleStream)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.broadcastLoop()
	}()

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{Addr: addr, Handler: r}
	s.log.Info("listening", zap.String("addr", addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		s.log.Info("shutting down")
	case err := <-errChan:
		s.log.Error("listener failed", zap.Error(err))
		serverErr = err
	}

	// A listener failure reaches here without Stop having been called;
	// close stopChan either way so the broadcast and write loops exit.
	s.Stop()

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	// http.Server.Shutdown does not close hijacked WebSocket connections;
	// drop every client explicitly or the read loops never return.
	s.clientsMu.RLock()
	open := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		open = append(open, c)
	}
	s.clientsMu.RUnlock()
	for _, c := range open {
		s.removeClient(c)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Warn("http shutdown", zap.Error(err))
	}

	s.wg.Wait()
	s.log.Info("server stopped")

	if serverErr != nil {
		return fmt.Errorf("server: listener failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// handleStream upgrades the connection and registers the client for chunk
// broadcasts.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		id:       uuid.New().String(),
		conn:     conn,
		sendChan: make(chan []byte, 32),
		done:     make(chan struct{}),
	}

	info := StreamInfo{
		ServerName: s.config.Name,
		SampleRate: s.config.SampleRate,
		Channels:   DefaultChannels,
		BitDepth:   synth.DefaultBitDepth,
		Waveform:   string(s.config.Waveform),
		Frequency:  s.config.Frequency,
	}
	header, err := json.Marshal(info)
	if err != nil {
		s.log.Error("marshal stream info", zap.Error(err))
		conn.Close()
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, header); err != nil {
		s.log.Warn("send stream info failed", zap.Error(err))
		conn.Close()
		return
	}

	s.addClient(c)
	s.log.Info("client connected",
		zap.String("client_id", c.id),
		zap.String("remote", r.RemoteAddr))

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.writeLoop(c)
	}()
	go func() {
		defer s.wg.Done()
		s.readLoop(c)
	}()
}

// writeLoop pushes queued chunks to one client.
func (s *Server) writeLoop(c *client) {
	for {
		select {
		case chunk, ok := <-c.sendChan:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
				sendErrorsTotal.Inc()
				s.log.Info("client write failed, dropping",
					zap.String("client_id", c.id),
					zap.Error(err))
				s.removeClient(c)
				return
			}
			chunksSentTotal.Inc()
			bytesSentTotal.Add(float64(len(chunk)))
		case <-c.done:
			return
		case <-s.stopChan:
			return
		}
	}
}

// readLoop drains the connection to detect closure.
func (s *Server) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.log.Info("client disconnected", zap.String("client_id", c.id))
			s.removeClient(c)
			return
		}
	}
}

// broadcastLoop generates one chunk per tick and fans it out. Clients whose
// queues are full skip the chunk rather than stalling the loop.
func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(ChunkDurationMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.clientsMu.RLock()
			if len(s.clients) == 0 {
				s.clientsMu.RUnlock()
				continue
			}
			chunk := s.engine.NextChunk()
			for _, c := range s.clients {
				select {
				case c.sendChan <- chunk:
				default:
				}
			}
			s.clientsMu.RUnlock()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Server) addClient(c *client) {
	s.clientsMu.Lock()
	s.clients[c.id] = c
	s.clientsMu.Unlock()

	clientsTotal.Inc()
	activeClients.Inc()
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	_, present := s.clients[c.id]
	delete(s.clients, c.id)
	s.clientsMu.Unlock()

	if present {
		activeClients.Dec()
		close(c.done)
		c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}
