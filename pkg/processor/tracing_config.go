package processor

import (
	"context"

	"go.uber.org/zap"

	internaltracing "github.com/wehubfusion/Daedalus/internal/tracing"
)

// TracingConfig is the public tracing configuration used by processor clients.
// It mirrors the internal tracing configuration but keeps the implementation
// private.
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	SampleRatio    float64
}

// DefaultTracingConfig returns a development-friendly tracing configuration.
func DefaultTracingConfig(serviceName string) TracingConfig {
	cfg := internaltracing.DefaultConfig(serviceName)
	return TracingConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRatio:    cfg.SampleRatio,
	}
}

func setupTracing(ctx context.Context, cfg TracingConfig, logger *zap.Logger) (func(context.Context) error, error) {
	return internaltracing.Setup(ctx, internaltracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRatio:    cfg.SampleRatio,
	}, logger)
}
