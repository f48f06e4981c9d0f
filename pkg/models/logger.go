package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// logger sends gorm's log output to zerolog.
//
// Every statement is logged at debug level with its row count, failed
// statements at error level. A missing record is not a failure, the
// ledgers answer it with a 404.
type logger struct {
	Logger zerolog.Logger
}

// LogMode is a no-op, the level is taken from the zerolog logger.
func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()
	entry := l.Logger.Debug()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		entry = l.Logger.Error().Err(err)
	}

	entry.Str("sql", sql).Int64("rows", rows).Dur("duration", time.Since(begin)).Msg("gorm")
}
