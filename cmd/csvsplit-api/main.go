// @title         csvsplit API
// @version       0.1.0
// @description   Split CSV uploads into fixed size chunks

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"csvsplit/internal/platform/config"
	"csvsplit/internal/platform/logger"
	phttp "csvsplit/internal/platform/net/http"
	"csvsplit/internal/platform/store"

	"csvsplit/internal/services/api"
)

// openStore is swapped in tests
var openStore = store.Open

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	l := logger.Get()

	err := run(ctx, config.New(), l)
	stop()
	if err != nil {
		l.Error().Err(err).Msg("csvsplit-api stopped")
		os.Exit(1)
	}
	l.Info().Msg("shutdown complete")
}

// run owns the store for the life of the server, it is closed on every return path
func run(ctx context.Context, root config.Conf, l *logger.Logger) error {
	apiCfg := root.Prefix("CORE_API_")

	// SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*, both off by default
	st, err := openStore(ctx, store.ConfigFromEnv(root, api.ServiceName), store.WithLogger(*l))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}

	opts := api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}
	if err := api.Migrate(ctx, opts); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// CORE_API_PORT and CORE_API_SHUTDOWN_GRACE
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), opts)
	return srv.Run(ctx)
}
