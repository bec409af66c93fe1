package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/SscSPs/pos_backoffice/internal/platform/clock"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// serviceOptions holds the tunables shared by the ledger services.
type serviceOptions struct {
	clock            clock.Clock
	maxRetries       int
	currencyCacheTTL time.Duration
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:            clock.Real(),
		maxRetries:       3,
		currencyCacheTTL: 5 * time.Minute,
	}
}

// ServiceOption configures a ledger service.
type ServiceOption func(*serviceOptions)

// WithClock sets the clock used for audit and effective timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(o *serviceOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMaxRetries sets how many times a transaction that lost a lock race is re-run.
func WithMaxRetries(n int) ServiceOption {
	return func(o *serviceOptions) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithCurrencyCacheTTL sets how long currency reference data is cached.
func WithCurrencyCacheTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		if ttl > 0 {
			o.currencyCacheTTL = ttl
		}
	}
}

func applyServiceOptions(opts []ServiceOption) serviceOptions {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
