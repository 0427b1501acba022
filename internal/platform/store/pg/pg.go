// Package pg opens the postgres pool that backs the runs ledger
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	AppName  string        // shows up as application_name in pg_stat_activity
	Slow     time.Duration // statements at or above this are flagged slow
}

// PG holds the pool and the statement trace
type PG struct {
	Pool  *pgxpool.Pool
	Trace Trace // nil when sql logging is off
	Slow  time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds a lazy pool, it does not ping
func Open(ctx context.Context, cfg Config, trace Trace) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Trace: trace, Slow: cfg.Slow}, nil
}

// Close closes the pool, nil safe
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
