package store

import (
	"context"
	"fmt"
	"time"

	chx "csvsplit/internal/platform/store/ch"
	"csvsplit/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
)

// openPG builds the pool, then pings it with exponential backoff until it answers
// or ConnectRetries runs out, the adapter is published only once healthy
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var trace pg.Trace
	if cfg.PG.LogSQL {
		trace = pg.LogTrace(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
	}, trace)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.PG.ConnectRetries, 1)
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	onRetry := func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Dur("wait", wait).Msg("postgres not ready")
	}
	if err := backoff.RetryNotify(ping, pgBackoff(ctx, attempts), onRetry); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
	}
	return newPGAdapter(p), nil
}

// pgBackoff doubles from 150ms up to 2s, attempts counts the first try
func pgBackoff(ctx context.Context, attempts int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0.1
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// dialCH is a seam so tests can open clickhouse without a server
var dialCH = func(ctx context.Context, c chx.Config) (chClient, error) {
	return chx.Open(ctx, c)
}

// openCH dials clickhouse, reporting as ClientName or the app name
func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	role := cfg.CH.ClientName
	if role == "" {
		role = cfg.AppName
	}
	c, err := dialCH(ctx, chx.Config{URL: cfg.CH.URL, Role: role, Tag: cfg.CH.ClientTag})
	if err != nil {
		return nil, err
	}
	s.Log.Info().Str("role", role).Msg("clickhouse connected")
	return newCHAdapter(c), nil
}
