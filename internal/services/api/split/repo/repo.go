// Package repo provides storage for split runs: a postgres ledger and clickhouse events
package repo

import (
	"context"
	"time"

	"csvsplit/internal/modkit/repokit"
	perr "csvsplit/internal/platform/errors"
	"csvsplit/internal/platform/store"
)

// Repo defines the ledger contract
type Repo interface {
	Insert(ctx context.Context, r RunRow) error
	Recent(ctx context.Context, limit int) ([]RunRow, error)
}

// RunRow is a split_runs row
type RunRow struct {
	ID        string
	Prefix    string
	ChunkSize int
	Archive   bool
	Stager    string
	Rows      int
	Chunks    int
	BytesIn   int64
	BytesOut  int64
	Status    string
	ErrorCode string
	ElapsedMs int64
	CreatedAt time.Time
}

// Schema creates the ledger table, applied at boot when auto migrate is on
const Schema = `
create table if not exists split_runs (
	id          uuid primary key,
	prefix      text        not null,
	chunk_size  integer     not null,
	archive     boolean     not null default false,
	stager      text        not null,
	rows        integer     not null default 0,
	chunks      integer     not null default 0,
	bytes_in    bigint      not null default 0,
	bytes_out   bigint      not null default 0,
	status      text        not null,
	error_code  text        not null default '',
	elapsed_ms  bigint      not null default 0,
	created_at  timestamptz not null default now()
);
create index if not exists split_runs_created_at_idx on split_runs (created_at desc);
`

// EnsureSchema applies Schema
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return perr.FromPostgres(err, "ensure split_runs schema")
	}
	return nil
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, row RunRow) error {
	const sql = `
insert into split_runs (id, prefix, chunk_size, archive, stager, rows, chunks,
	bytes_in, bytes_out, status, error_code, elapsed_ms, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err := r.q.Exec(ctx, sql,
		row.ID, row.Prefix, row.ChunkSize, row.Archive, row.Stager, row.Rows, row.Chunks,
		row.BytesIn, row.BytesOut, row.Status, row.ErrorCode, row.ElapsedMs, row.CreatedAt,
	)
	if err != nil {
		return perr.FromPostgres(err, "insert split run")
	}
	return nil
}

func (r *queries) Recent(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const sql = `
select id::text, prefix, chunk_size, archive, stager, rows, chunks,
	bytes_in, bytes_out, status, error_code, elapsed_ms, created_at
from split_runs
order by created_at desc
limit $1
`
	out, err := store.Many(ctx, r.q, scanRun, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list split runs")
	}
	return out, nil
}

func scanRun(row store.Row) (RunRow, error) {
	var rr RunRow
	err := row.Scan(
		&rr.ID,
		&rr.Prefix,
		&rr.ChunkSize,
		&rr.Archive,
		&rr.Stager,
		&rr.Rows,
		&rr.Chunks,
		&rr.BytesIn,
		&rr.BytesOut,
		&rr.Status,
		&rr.ErrorCode,
		&rr.ElapsedMs,
		&rr.CreatedAt,
	)
	return rr, err
}
