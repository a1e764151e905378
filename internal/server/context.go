package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mailfold/mailfold/internal/gmail"
	"github.com/mailfold/mailfold/internal/instrumentation"
	"github.com/mailfold/mailfold/internal/logging"
	"github.com/mailfold/mailfold/internal/search"
	"github.com/mailfold/mailfold/internal/timezone"
)

// ServerContext holds the shared state of the MCP server: the configured
// clock, the search orchestrator built on it, and per-account Gmail
// clients created lazily on first use.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	clock        *timezone.Clock
	orchestrator *search.Orchestrator
	logger       *slog.Logger
	gmailClients map[string]*gmail.Client

	instrumentationProvider *instrumentation.Provider
	metrics                 *instrumentation.Metrics
	auditLogger             *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context on the given clock.
func NewServerContext(ctx context.Context, clock *timezone.Clock, logger *slog.Logger) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if logger == nil {
		logger = slog.Default()
	}

	gmailClients := make(map[string]*gmail.Client)

	// Eagerly create the default client when a token is already on disk;
	// anything else is created lazily per account.
	if gmail.HasToken() {
		client, err := gmail.NewClient(shutdownCtx)
		if err != nil {
			logger.Warn("failed to create Gmail client for default account", logging.Err(err))
		} else {
			gmailClients["default"] = client
		}
	}

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		clock:        clock,
		orchestrator: search.New(clock, logger),
		logger:       logger,
		gmailClients: gmailClients,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Clock returns the configured timezone clock.
func (sc *ServerContext) Clock() *timezone.Clock {
	return sc.clock
}

// Orchestrator returns the search orchestrator.
func (sc *ServerContext) Orchestrator() *search.Orchestrator {
	return sc.orchestrator
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// GmailClientForAccount returns the Gmail client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) GmailClientForAccount(account string) *gmail.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.gmailClients[account]; ok {
		return client
	}

	if !gmail.HasTokenForAccount(account) {
		return nil
	}

	client, err := gmail.NewClientForAccount(sc.ctx, account)
	if err != nil {
		sc.logger.Warn("failed to create Gmail client", logging.Account(account), logging.Err(err))
		return nil
	}

	sc.gmailClients[account] = client
	return client
}

// GmailClient returns the Gmail client for the default account.
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.GmailClientForAccount("default")
}

// SetGmailClientForAccount sets the Gmail client for a specific account.
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// SetGmailClient sets the Gmail client for the default account.
func (sc *ServerContext) SetGmailClient(client *gmail.Client) {
	sc.SetGmailClientForAccount("default", client)
}

// SetInstrumentation attaches an instrumentation provider and audit logger.
// Both may be nil when instrumentation is disabled.
func (sc *ServerContext) SetInstrumentation(provider *instrumentation.Provider, audit *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.instrumentationProvider = provider
	if provider != nil {
		sc.metrics = provider.Metrics()
	}
	sc.auditLogger = audit
}

// SetMetrics sets the metrics recorder directly, bypassing any provider.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// InstrumentationProvider returns the instrumentation provider, or nil when
// instrumentation is disabled.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Metrics returns the metrics recorder, or nil when instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil when audit logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
