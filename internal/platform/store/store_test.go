package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"csvsplit/internal/platform/config"
	chx "csvsplit/internal/platform/store/ch"
	"csvsplit/internal/platform/testkit"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// TestOpen_CHOnly_SetsCHAndLeavesOthersNil exercises the CH success path from Open
func TestOpen_CHOnly_SetsCHAndLeavesOthersNil(t *testing.T) {
	testkit.Serial(t)

	var dialed chx.Config
	fake := &fakeCH{}
	testkit.Swap(t, &dialCH, func(_ context.Context, c chx.Config) (chClient, error) {
		dialed = c
		return fake, nil
	})

	ctx := context.Background()
	cfg := Config{
		AppName: "csvsplit-api",
		CH: CHConfig{
			Enabled: true,
			URL:     "clickhouse://local:9000/default",
		},
	}

	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.CH == nil || s.PG != nil {
		t.Fatalf("unexpected seams CH=%T PG=%T", s.CH, s.PG)
	}
	if dialed.Role != "csvsplit-api" || dialed.URL != cfg.CH.URL {
		t.Fatalf("dial config = %+v", dialed)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(ctx); err != nil || !fake.closed {
		t.Fatalf("Close err=%v closed=%v", err, fake.closed)
	}
}

func TestOpen_CHDialError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &dialCH, func(context.Context, chx.Config) (chClient, error) {
		return nil, errors.New("connection refused")
	})

	s, err := Open(context.Background(), Config{CH: CHConfig{Enabled: true, URL: "clickhouse://x"}})
	if err == nil || s != nil {
		t.Fatalf("want dial error, got store=%v err=%v", s, err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("T_SERVICE_PGSQL_ENABLED", "true")
	t.Setenv("T_SERVICE_PGSQL_DBURL", "postgres://u:p@db/x")
	t.Setenv("T_SERVICE_PGSQL_MAX_CONNS", "9")
	t.Setenv("T_SERVICE_CLICKHOUSE_ENABLED", "false")

	cfg := ConfigFromEnv(config.New().Prefix("T_"), "csvsplit-api")
	if !cfg.PG.Enabled || cfg.PG.URL != "postgres://u:p@db/x" || cfg.PG.MaxConns != 9 {
		t.Fatalf("pg = %+v", cfg.PG)
	}
	if cfg.PG.ConnectRetries != 20 || cfg.PG.SlowQueryMs != 500 {
		t.Fatalf("pg defaults = %+v", cfg.PG)
	}
	if cfg.CH.Enabled {
		t.Fatalf("ch should be disabled")
	}
	if cfg.AppName != "csvsplit-api" {
		t.Fatalf("app = %q", cfg.AppName)
	}
}

func TestOpen_PGBadURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: "://bad", LogSQL: true}})
	if err == nil || s != nil {
		t.Fatalf("want pg parse error, got store=%v err=%v", s, err)
	}
}

func TestOpen_Empty(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.New(&buf)))
	if err != nil || s == nil {
		t.Fatalf("Open: store=%v err=%v", s, err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("no backend should be open")
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_PGFailsBeforeCH(t *testing.T) {
	testkit.Serial(t)

	dialed := false
	testkit.Swap(t, &dialCH, func(context.Context, chx.Config) (chClient, error) {
		dialed = true
		return &fakeCH{}, nil
	})

	cfg := Config{
		PG: PGConfig{Enabled: true, URL: "://bad"},
		CH: CHConfig{Enabled: true, URL: "clickhouse://local"},
	}
	if s, err := Open(context.Background(), cfg); err == nil || s != nil {
		t.Fatalf("want error, got store=%v", s)
	}
	if dialed {
		t.Fatalf("clickhouse must not be dialed after pg fails")
	}
}

func TestPGBackoff_CountsAttempts(t *testing.T) {
	t.Parallel()

	b := pgBackoff(context.Background(), 3)
	for i := range 2 {
		if d := b.NextBackOff(); d == backoff.Stop || d > 3*time.Second {
			t.Fatalf("retry %d wait = %v", i, d)
		}
	}
	if d := b.NextBackOff(); d != backoff.Stop {
		t.Fatalf("third retry must stop, got %v", d)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if d := pgBackoff(ctx, 20).NextBackOff(); d != backoff.Stop {
		t.Fatalf("canceled ctx must stop, got %v", d)
	}
}
