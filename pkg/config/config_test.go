package config

import (
	"testing"

	"ratatosk/pkg/engine"
)

func clearEnv(t *testing.T) {
	t.Setenv("RATATOSK_DEPTH", "")
	t.Setenv("RATATOSK_QDEPTH", "")
	t.Setenv("RATATOSK_CLOCK_SECONDS", "")
	t.Setenv("RATATOSK_SHOW_STATS", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxDepth != engine.DefaultMaxDepth {
		t.Errorf("MaxDepth %d, want %d", cfg.MaxDepth, engine.DefaultMaxDepth)
	}
	if cfg.QuiescenceDepth != engine.DefaultQuiescenceDepth {
		t.Errorf("QuiescenceDepth %d, want %d", cfg.QuiescenceDepth, engine.DefaultQuiescenceDepth)
	}
	if cfg.ClockSeconds != 300 {
		t.Errorf("ClockSeconds %d, want 300", cfg.ClockSeconds)
	}
	if cfg.ShowStats {
		t.Error("ShowStats defaults on")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATATOSK_DEPTH", "3")
	t.Setenv("RATATOSK_QDEPTH", "8")
	t.Setenv("RATATOSK_CLOCK_SECONDS", "60")
	t.Setenv("RATATOSK_SHOW_STATS", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxDepth != 3 || cfg.QuiescenceDepth != 8 || cfg.ClockSeconds != 60 || !cfg.ShowStats {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATATOSK_DEPTH", "ten")
	if _, err := Load(); err == nil {
		t.Error("malformed RATATOSK_DEPTH accepted")
	}
	clearEnv(t)
	t.Setenv("RATATOSK_SHOW_STATS", "yes please")
	if _, err := Load(); err == nil {
		t.Error("malformed RATATOSK_SHOW_STATS accepted")
	}
}
