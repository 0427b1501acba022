package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"csvsplit/internal/platform/store"
)

type fakeCH struct {
	table string
	data  any
	execs []string
	err   error
}

func (f *fakeCH) Insert(_ context.Context, table string, data any) error {
	f.table, f.data = table, data
	return f.err
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return f.err
}

func (f *fakeCH) Close() error { return nil }

func TestRecord_RowShape(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	f := &fakeCH{}
	err := NewCHEvents(f).Record(context.Background(), RunRow{
		ID: "id", Status: "ok", Rows: 3, Chunks: 2, BytesIn: 10, BytesOut: 14, ElapsedMs: 7, CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	rows, ok := f.data.([][]any)
	if f.table != EventsTable || !ok || len(rows) != 1 || len(rows[0]) != 8 {
		t.Fatalf("insert table=%s data=%v", f.table, f.data)
	}
	r := rows[0]
	if r[0] != "id" || r[2] != "ok" || r[3] != uint32(3) || r[6] != uint64(14) || r[7] != uint64(7) {
		t.Fatalf("row = %v", r)
	}
	if ts := r[1].(time.Time); ts.Location() != time.UTC || !ts.Equal(at) {
		t.Fatalf("ts = %v", ts)
	}
}

func TestRecord_ErrorPassthrough(t *testing.T) {
	t.Parallel()

	if err := NewCHEvents(&fakeCH{err: errors.New("down")}).Record(context.Background(), RunRow{}); err == nil {
		t.Fatalf("want error")
	}
}

func TestEnsureEvents(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	if err := EnsureEvents(context.Background(), f); err != nil {
		t.Fatalf("EnsureEvents: %v", err)
	}
	if len(f.execs) != 1 || f.execs[0] != EventsDDL {
		t.Fatalf("execs = %v", f.execs)
	}
}
