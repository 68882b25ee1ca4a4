package config

import (
	"testing"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/ilpclient"
)

func TestLoadDefaultsToHardcodedEndpoint(t *testing.T) {
	cfg := Load(nil)
	if cfg.ILPEndpoint != ilpclient.DefaultEndpoint {
		t.Errorf("expected default endpoint, got %q", cfg.ILPEndpoint)
	}
	if cfg.HTTPAddr != ":8888" {
		t.Errorf("expected default http addr :8888, got %q", cfg.HTTPAddr)
	}
}

func TestLoadOverridesFromFlags(t *testing.T) {
	cfg := Load([]string{"-ilp-endpoint", "https://example.test", "-http-addr", ":9999"})
	if cfg.ILPEndpoint != "https://example.test" {
		t.Errorf("expected overridden endpoint, got %q", cfg.ILPEndpoint)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("expected overridden http addr, got %q", cfg.HTTPAddr)
	}
}
