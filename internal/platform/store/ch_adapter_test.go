package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"csvsplit/internal/platform/store/ch"
)

type fakeCH struct {
	table   string
	rows    [][]any
	execs   []string
	pingErr error
	closed  bool
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	return nil, errors.New("query failed")
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}

func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

func TestCHAdapter_InsertShape(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	a := newCHAdapter(f)
	if err := a.Insert(context.Background(), "split_events", [][]any{{"x", 1}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if f.table != "split_events" || len(f.rows) != 1 {
		t.Fatalf("not delegated: %s %v", f.table, f.rows)
	}
	if err := a.Insert(context.Background(), "t", []any{1}); err == nil || !strings.Contains(err.Error(), "[]interface {}") {
		t.Fatalf("want shape error, got %v", err)
	}
}

func TestCHAdapter_ExecDelegates(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	if err := newCHAdapter(f).Exec(context.Background(), "CREATE TABLE x"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(f.execs) != 1 || f.execs[0] != "CREATE TABLE x" {
		t.Fatalf("execs = %v", f.execs)
	}
}

func TestCHAdapter_QueryErrorPassthrough(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&fakeCH{})
	if _, err := a.Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("want error")
	}
}

func TestCHAdapter_PingAndClose(t *testing.T) {
	t.Parallel()

	f := &fakeCH{pingErr: errors.New("down")}
	a := newCHAdapter(f)
	p, ok := a.(Pinger)
	if !ok {
		t.Fatalf("adapter must implement Pinger")
	}
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("want ping error")
	}
	if err := a.Close(); err != nil || !f.closed {
		t.Fatalf("close err=%v closed=%v", err, f.closed)
	}
}
