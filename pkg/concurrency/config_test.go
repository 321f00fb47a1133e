package concurrency

import "testing"

func TestLoadConfigRespectsEnvironmentOverrides(t *testing.T) {
	t.Setenv("DAEDALUS_MAX_CONCURRENT", "42")
	t.Setenv("DAEDALUS_WORKERS", "7")

	cfg := LoadConfig()

	if cfg.MaxConcurrent != 42 {
		t.Fatalf("expected MaxConcurrent 42, got %d", cfg.MaxConcurrent)
	}
	if cfg.Workers != 7 {
		t.Fatalf("expected Workers 7, got %d", cfg.Workers)
	}
	if cfg.Source != ConfigSourceEnvVar {
		t.Fatalf("expected env var source, got %s", cfg.Source)
	}
}

func TestLoadConfigFallsBackToAutoDetect(t *testing.T) {
	t.Setenv("DAEDALUS_MAX_CONCURRENT", "")
	t.Setenv("DAEDALUS_WORKERS", "")

	cfg := LoadConfig()

	if cfg.MaxConcurrent < 1 {
		t.Fatalf("expected positive MaxConcurrent, got %d", cfg.MaxConcurrent)
	}
	if cfg.Workers < 1 {
		t.Fatalf("expected positive Workers, got %d", cfg.Workers)
	}
	if cfg.Source != ConfigSourceAutoDetect {
		t.Fatalf("expected auto-detect source, got %s", cfg.Source)
	}
	if cfg.EffectiveCPUs < 1 {
		t.Fatalf("expected positive EffectiveCPUs, got %d", cfg.EffectiveCPUs)
	}
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("DAEDALUS_MAX_CONCURRENT", "not-a-number")

	cfg := LoadConfig()
	if cfg.MaxConcurrent < 1 {
		t.Fatalf("expected fallback MaxConcurrent, got %d", cfg.MaxConcurrent)
	}
}
