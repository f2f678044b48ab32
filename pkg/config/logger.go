package config

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Entries logged through
// logger.Ctx(ctx) carry the trace and span ids of the active span.
func NewLogger(cfg *AppConfig) (*otelzap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	if cfg.Environment != "production" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.InitialFields = map[string]interface{}{
		"service": cfg.Telemetry.ServiceName,
	}

	zapLogger, err := zapConfig.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return otelzap.New(zapLogger), nil
}

func NewNopLogger() *otelzap.Logger {
	return otelzap.New(zap.NewNop())
}
