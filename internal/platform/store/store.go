// Package store opens the optional postgres and clickhouse backends behind small seams
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"csvsplit/internal/platform/logger"
)

// Store holds whichever backends are on, the zero value has none
type Store struct {
	Log logger.Logger // zero value discards
	PG  TxRunner      // nil when SERVICE_PGSQL_ENABLED is off
	CH  Clickhouse    // nil when SERVICE_CLICKHOUSE_ENABLED is off
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set, callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs sql, satisfied by both the pool and a tx
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in a transaction, committing when fn returns nil
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam, Insert takes rows in column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger is a backend Guard and readiness can probe
type Pinger interface{ Ping(context.Context) error }

// Open dials the backends cfg enables, the rest stay nil
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// seams lists the open backends by name
func (s *Store) seams() map[string]any {
	m := map[string]any{}
	if s.PG != nil {
		m["pg"] = s.PG
	}
	if s.CH != nil {
		m["ch"] = s.CH
	}
	return m
}

// Guard pings each open backend that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for name, seam := range s.seams() {
		if p, ok := seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend, a nil or empty store is a no op
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for name, seam := range s.seams() {
		if c, ok := seam.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
