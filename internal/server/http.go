package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/instrumentation"
)

const (
	// DefaultHTTPReadHeaderTimeout bounds how long reading request headers may take.
	DefaultHTTPReadHeaderTimeout = 10 * time.Second

	// DefaultHTTPWriteTimeout bounds non-streaming response writes.
	DefaultHTTPWriteTimeout = 10 * time.Second

	// DefaultHTTPIdleTimeout closes idle keep-alive connections.
	DefaultHTTPIdleTimeout = 120 * time.Second
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind to (e.g., ":8080").
	Addr string

	// DisableStreaming disables chunked streaming responses for
	// compatibility with clients that buffer the whole body.
	DisableStreaming bool

	// Logger receives server lifecycle logs. A nil logger defaults
	// to slog.Default().
	Logger *slog.Logger
}

// HTTPServer serves the MCP protocol over streamable HTTP on /mcp,
// alongside Kubernetes health probes on /healthz and /readyz.
type HTTPServer struct {
	mcpServer        *mcpserver.MCPServer
	httpServer       *http.Server
	healthChecker    *HealthChecker
	metrics          *instrumentation.Metrics
	logger           *slog.Logger
	addr             string
	disableStreaming bool
}

// NewHTTPServer creates an HTTP server for the given MCP server.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, config HTTPServerConfig) (*HTTPServer, error) {
	if mcpSrv == nil {
		return nil, fmt.Errorf("mcp server is required")
	}
	if config.Addr == "" {
		return nil, fmt.Errorf("listen address is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPServer{
		mcpServer:        mcpSrv,
		logger:           logger,
		addr:             config.Addr,
		disableStreaming: config.DisableStreaming,
	}, nil
}

// SetHealthChecker attaches a health checker whose probe endpoints are
// registered when the server starts.
func (s *HTTPServer) SetHealthChecker(h *HealthChecker) {
	s.healthChecker = h
}

// SetMetrics enables HTTP request metrics for the MCP endpoint.
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.addr
}

// Start starts the HTTP server and blocks until it stops.
// Call this in a goroutine for non-blocking operation.
func (s *HTTPServer) Start() error {
	mux := http.NewServeMux()

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath("/mcp"),
	}
	if s.disableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)

	mux.Handle("/mcp", s.instrumentHandler("/mcp", streamable))

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultHTTPReadHeaderTimeout,
		IdleTimeout:       DefaultHTTPIdleTimeout,
	}

	// WriteTimeout stays unset when streaming is enabled; long-lived
	// streamed responses would be cut off otherwise.
	if s.disableStreaming {
		s.httpServer.WriteTimeout = DefaultHTTPWriteTimeout
	}

	s.logger.Info("starting HTTP server", "addr", s.addr, "streaming", !s.disableStreaming)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.logger.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// instrumentHandler wraps a handler with HTTP request metrics.
// Returns the handler unchanged when metrics are not configured.
func (s *HTTPServer) instrumentHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the underlying writer so streaming keeps working
// through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
