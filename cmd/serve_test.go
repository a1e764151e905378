package cmd

import (
	"testing"
)

func TestResolveTimezone(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		expected string
	}{
		{
			name:     "flag wins over env",
			flag:     "GMT+2",
			env:      "GMT-8",
			expected: "GMT+2",
		},
		{
			name:     "env used when flag empty",
			flag:     "",
			env:      "GMT-8",
			expected: "GMT-8",
		},
		{
			name:     "both empty means UTC",
			flag:     "",
			env:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAILFOLD_TIMEZONE", tt.env)

			if got := resolveTimezone(tt.flag); got != tt.expected {
				t.Errorf("resolveTimezone(%q) = %q, want %q", tt.flag, got, tt.expected)
			}
		})
	}
}

func TestLoadMetricsEnvVars(t *testing.T) {
	t.Run("env disables metrics when flag unset", func(t *testing.T) {
		t.Setenv("METRICS_ENABLED", "false")
		t.Setenv("METRICS_ADDR", ":9191")

		cmd := newServeCmd()
		config := MetricsConfig{Enabled: true, Addr: ":9090"}
		loadMetricsEnvVars(cmd, &config)

		if config.Enabled {
			t.Error("expected metrics to be disabled via METRICS_ENABLED=false")
		}
		if config.Addr != ":9191" {
			t.Errorf("expected addr :9191, got %s", config.Addr)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv("METRICS_ENABLED", "false")
		t.Setenv("METRICS_ADDR", ":9191")

		cmd := newServeCmd()
		if err := cmd.Flags().Set("metrics-enabled", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("metrics-addr", ":7070"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		config := MetricsConfig{Enabled: true, Addr: ":7070"}
		loadMetricsEnvVars(cmd, &config)

		if !config.Enabled {
			t.Error("expected explicit flag to keep metrics enabled")
		}
		if config.Addr != ":7070" {
			t.Errorf("expected addr :7070, got %s", config.Addr)
		}
	})

	t.Run("defaults untouched without env", func(t *testing.T) {
		t.Setenv("METRICS_ENABLED", "")
		t.Setenv("METRICS_ADDR", "")

		cmd := newServeCmd()
		config := MetricsConfig{Enabled: true, Addr: ":9090"}
		loadMetricsEnvVars(cmd, &config)

		if !config.Enabled || config.Addr != ":9090" {
			t.Errorf("expected defaults preserved, got %+v", config)
		}
	})
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		tool     string
		expected string
	}{
		{"gmail_search_emails", "Gmail Tools"},
		{"gmail_get_recent_emails", "Gmail Tools"},
		{"google_get_auth_url", "Google Auth Tools"},
		{"unknown_tool", "Other"},
	}

	for _, tt := range tests {
		if got := getCategoryFromToolName(tt.tool); got != tt.expected {
			t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.tool, got, tt.expected)
		}
	}
}
