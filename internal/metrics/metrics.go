package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_fetch_requests_total",
			Help: "Total number of outbound page fetches executed",
		},
		[]string{"host", "status", "blocked"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobscout_fetch_duration_seconds",
			Help:    "Duration of outbound page fetches in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"host"},
	)

	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_search_requests_total",
			Help: "Total number of search provider requests executed",
		},
		[]string{"status"},
	)

	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_tool_calls_total",
			Help: "Total number of MCP tool calls by outcome",
		},
		[]string{"tool", "outcome"},
	)
)

// RecordFetch updates fetch metrics for a single outbound request.
// status may be 0 when the request failed before an HTTP response.
func RecordFetch(host string, status int, blocked bool, duration time.Duration) {
	statusStr := "error"
	if status > 0 {
		statusStr = strconv.Itoa(status)
	}

	blockedStr := "false"
	if blocked {
		blockedStr = "true"
	}

	FetchRequestsTotal.WithLabelValues(host, statusStr, blockedStr).Inc()
	FetchDuration.WithLabelValues(host).Observe(duration.Seconds())
}

// RecordSearch updates search metrics for a single provider request.
func RecordSearch(status int) {
	statusStr := "error"
	if status > 0 {
		statusStr = strconv.Itoa(status)
	}
	SearchRequestsTotal.WithLabelValues(statusStr).Inc()
}

// RecordToolCall updates the tool call counter.
// outcome is one of "ok", "invalid_params" or "internal_error".
func RecordToolCall(tool, outcome string) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

// Server encapsulates the ops HTTP server exposing Prometheus metrics and any
// extra handlers (e.g. the invocation report).
type Server struct {
	srv *http.Server
}

// Start begins listening on the specified port and exposes /metrics plus any
// extra handlers keyed by path.
func Start(port int, extra map[string]http.Handler) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	for path, h := range extra {
		mux.Handle(path, h)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		// Suppress the error from intentional shutdown
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("ops server failed: %v\n", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the ops server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
