package repo

import (
	"context"

	"csvsplit/internal/platform/store"
)

// EventsTable is the clickhouse table split events land in
const EventsTable = "split_events"

// EventsDDL creates EventsTable
const EventsDDL = `
CREATE TABLE IF NOT EXISTS split_events (
	run_id     UUID,
	ts         DateTime64(3, 'UTC'),
	status     LowCardinality(String),
	rows       UInt32,
	chunks     UInt32,
	bytes_in   UInt64,
	bytes_out  UInt64,
	elapsed_ms UInt64
) ENGINE = MergeTree
ORDER BY (ts, run_id)
`

// EventSink receives one event per split
type EventSink interface {
	Record(ctx context.Context, r RunRow) error
}

// CHEvents writes events through the store clickhouse seam
type CHEvents struct{ ch store.Clickhouse }

// NewCHEvents returns a sink over ch
func NewCHEvents(ch store.Clickhouse) *CHEvents { return &CHEvents{ch: ch} }

// Record implements EventSink
func (e *CHEvents) Record(ctx context.Context, r RunRow) error {
	return e.ch.Insert(ctx, EventsTable, [][]any{eventRow(r)})
}

// eventRow lays r out in EventsTable column order
func eventRow(r RunRow) []any {
	return []any{
		r.ID,
		r.CreatedAt.UTC(),
		r.Status,
		uint32(r.Rows),
		uint32(r.Chunks),
		uint64(r.BytesIn),
		uint64(r.BytesOut),
		uint64(r.ElapsedMs),
	}
}

// EnsureEvents applies EventsDDL
func EnsureEvents(ctx context.Context, ch store.Clickhouse) error {
	return ch.Exec(ctx, EventsDDL)
}
