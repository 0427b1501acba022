package store

import (
	"context"
	"fmt"

	"csvsplit/internal/platform/store/ch"
)

// chClient is the part of *ch.CH the seam needs
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// chSeam narrows a clickhouse client to Clickhouse, Exec Ping and Close pass through
type chSeam struct{ chClient }

func newCHAdapter(c chClient) Clickhouse { return chSeam{c} }

// Insert accepts rows as [][]any in column order
func (s chSeam) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("store: clickhouse insert into %s wants [][]any, got %T", table, data)
	}
	return s.chClient.Insert(ctx, table, rows)
}

func (s chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := s.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

// chRows drops the error from the driver's Close
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
