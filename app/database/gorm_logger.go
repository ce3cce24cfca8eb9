package database

import (
	"context"
	"errors"
	"time"

	"github.com/mytheresa/shop-admin/app/logging"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger sends GORM's statement log to slog.
// Failed and slow statements are always logged; others only when enabled.
type GormLogger struct {
	enabled            bool
	slowQueryThreshold time.Duration
}

func NewGormLogger(enabled bool, slowQueryThreshold time.Duration) *GormLogger {
	return &GormLogger{
		enabled:            enabled,
		slowQueryThreshold: slowQueryThreshold,
	}
}

func (l *GormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.enabled {
		logging.Info(ctx, msg, "data", data)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	logging.Warn(ctx, msg, "data", data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	logging.Error(ctx, msg, "data", data)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	slow := l.slowQueryThreshold > 0 && elapsed > l.slowQueryThreshold
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	if !l.enabled && !slow && !failed {
		return
	}

	sql, rows := fc()
	args := []any{"duration", elapsed, "rows", rows, "sql", sql}

	switch {
	case failed:
		logging.Error(ctx, "sql execution failed", append(args, "error", err)...)
	case slow:
		logging.Warn(ctx, "slow query detected", args...)
	default:
		logging.Debug(ctx, "sql executed", args...)
	}
}
