package store

import (
	"context"
	"errors"
	"testing"
)

type sliceRows struct {
	vals []string
	i    int
	err  error
}

func (r *sliceRows) Next() bool        { r.i++; return r.i <= len(r.vals) }
func (r *sliceRows) Err() error        { return r.err }
func (r *sliceRows) Close()            {}
func (r *sliceRows) Columns() []string { return []string{"v"} }

func (r *sliceRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.vals[r.i-1]
	return nil
}

type rowsQuerier struct {
	ledgerNoPing
	rows *sliceRows
	err  error
}

func (q rowsQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func scanString(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestMany(t *testing.T) {
	t.Parallel()

	out, err := Many(context.Background(), rowsQuerier{rows: &sliceRows{vals: []string{"x", "y"}}}, scanString, "q")
	if err != nil || len(out) != 2 || out[0] != "x" || out[1] != "y" {
		t.Fatalf("out=%v err=%v", out, err)
	}

	out, err = Many(context.Background(), rowsQuerier{rows: &sliceRows{}}, scanString, "q")
	if err != nil || len(out) != 0 {
		t.Fatalf("empty: out=%v err=%v", out, err)
	}

	boom := errors.New("boom")
	if _, err := Many(context.Background(), rowsQuerier{err: boom}, scanString, "q"); !errors.Is(err, boom) {
		t.Fatalf("query err = %v", err)
	}
	if _, err := Many(context.Background(), rowsQuerier{rows: &sliceRows{err: boom}}, scanString, "q"); !errors.Is(err, boom) {
		t.Fatalf("rows err = %v", err)
	}
}
