// ABOUTME: Prometheus metrics for the tone stream server
// ABOUTME: Client gauges and chunk/byte counters exposed on /metrics
package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tonefall_active_clients",
		Help: "Number of connected stream clients",
	})
	clientsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonefall_clients_total",
		Help: "Total clients that have connected",
	})
	chunksSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonefall_chunks_sent_total",
		Help: "Total audio chunks sent across all clients",
	})
	bytesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonefall_bytes_sent_total",
		Help: "Total PCM bytes sent across all clients",
	})
	sendErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonefall_send_errors_total",
		Help: "Total chunk sends that failed and dropped the client",
	})
)
