package processor

import "testing"

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig("daedalus-test")
	if cfg.ServiceName != "daedalus-test" {
		t.Fatalf("expected service name passed through, got %q", cfg.ServiceName)
	}
	if cfg.OTLPEndpoint == "" {
		t.Fatal("expected a default OTLP endpoint")
	}
	if cfg.SampleRatio <= 0 || cfg.SampleRatio > 1 {
		t.Fatalf("expected sample ratio in (0, 1], got %f", cfg.SampleRatio)
	}
}
