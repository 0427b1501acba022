package store

import (
	"context"
	"errors"
	"time"

	"csvsplit/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is what both *pgxpool.Pool and pgx.Tx offer
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter is the TxRunner over a pgx pool
type pgAdapter struct {
	traced
	begin func(ctx context.Context) (pgx.Tx, error)
	close func()
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		traced: traced{q: p.Pool, trace: p.Trace, slow: p.Slow},
		begin:  p.Pool.Begin,
		close:  p.Close,
	}
}

// Tx commits when fn returns nil and rolls back otherwise
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) (err error) {
	tx, err := a.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(a.over(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.q == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "select 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	if a.close != nil {
		a.close()
	}
	return nil
}

// traced runs statements on q and reports each one to trace
type traced struct {
	q     pgxQuerier
	trace pg.Trace
	slow  time.Duration
}

// over keeps the trace settings but runs on q
func (t traced) over(q pgxQuerier) traced {
	t.q = q
	return t
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.q.Exec(ctx, sql, args...)
	t.done(ctx, sql, args, start, err)
	return ct, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.q.Query(ctx, sql, args...)
	t.done(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow reports once Scan has run so the scan error is traced
func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return scanHook{
		Row:  t.q.QueryRow(ctx, sql, args...),
		done: func(err error) { t.done(ctx, sql, args, start, err) },
	}
}

func (t traced) done(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.trace == nil {
		return
	}
	took := time.Since(start)
	t.trace(ctx, pg.Stmt{
		SQL:  sql,
		Args: args,
		Took: took,
		Err:  err,
		Slow: t.slow > 0 && took >= t.slow,
	})
}

// scanHook calls done with the result of Scan
type scanHook struct {
	pgx.Row
	done func(error)
}

func (h scanHook) Scan(dst ...any) error {
	err := h.Row.Scan(dst...)
	h.done(err)
	return err
}

// pgRows exposes column names from the field descriptions
type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	names := make([]string, 0, len(r.FieldDescriptions()))
	for _, fd := range r.FieldDescriptions() {
		names = append(names, fd.Name)
	}
	return names
}
