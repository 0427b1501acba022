package pg

import (
	"context"
	"strings"
	"time"

	"csvsplit/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Stmt is one statement round trip
type Stmt struct {
	SQL  string
	Args []any
	Took time.Duration
	Err  error
	Slow bool
}

// Trace receives every statement
type Trace func(ctx context.Context, s Stmt)

// LogTrace logs statements at debug and slow ones at warn, regardless of the root level
func LogTrace(root logger.Logger) Trace {
	log := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return func(_ context.Context, s Stmt) {
		ev := log.Debug()
		if s.Slow {
			ev = log.Warn()
		}
		ev.Float64("elapsed_ms", float64(s.Took.Microseconds())/1000).
			Bool("slow", s.Slow).
			Str("sql", squash(s.SQL)).
			Interface("args", s.Args).
			Err(s.Err).
			Msg("pg query")
	}
}

// squash collapses runs of whitespace so multi line sql logs on one line
func squash(sql string) string { return strings.Join(strings.Fields(sql), " ") }
