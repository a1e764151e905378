package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

func TestNewHTTPServerValidation(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1")

	if _, err := NewHTTPServer(nil, HTTPServerConfig{Addr: ":8080"}); err == nil {
		t.Error("expected error for nil MCP server")
	}

	if _, err := NewHTTPServer(mcpSrv, HTTPServerConfig{}); err == nil {
		t.Error("expected error for missing address")
	}

	srv, err := NewHTTPServer(mcpSrv, HTTPServerConfig{Addr: ":8080"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %s", srv.Addr())
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthChecker(nil)
	mux := http.NewServeMux()
	h.RegisterHealthEndpoints(mux)

	t.Run("liveness always ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("readiness follows ready flag", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 while ready, got %d", rec.Code)
		}

		h.SetReady(false)
		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503 when not ready, got %d", rec.Code)
		}
	})
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	if sr.status != http.StatusOK {
		t.Errorf("expected default status 200, got %d", sr.status)
	}

	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot {
		t.Errorf("expected recorded status 418, got %d", sr.status)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected underlying status 418, got %d", rec.Code)
	}
}
