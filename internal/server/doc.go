// Package server provides the MCP server context, health endpoints, and
// the dedicated metrics server for the mailfold application.
//
// # Key Components
//
// ServerContext manages Gmail API clients with lazy initialization and
// caching, keyed by account. It also owns the configured timezone clock
// and the search orchestrator built on it.
//
// HealthChecker serves Kubernetes-style liveness and readiness probes.
// A malformed timezone configuration shows up as a degraded check but
// never fails readiness; the server keeps working on UTC.
//
// HTTPServer carries the MCP protocol over streamable HTTP on /mcp and
// registers the health probes on the same listener.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolated
// from the MCP transport.
package server
