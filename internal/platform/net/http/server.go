package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"csvsplit/internal/platform/config"
	"csvsplit/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const (
	defaultAddr  = ":4000"
	defaultGrace = 10 * time.Second
)

// Server owns the chi mux and the listener that serves it
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads PORT and SHUTDOWN_GRACE from cfg. Each setup func sees
// the mux before any route is mounted
func NewServer(cfg config.Conf, setup ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, fn := range setup {
		fn(mux)
	}
	srv := &stdhttp.Server{
		Addr:              cfg.MayString("PORT", defaultAddr),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{mux: mux, srv: srv, grace: cfg.MayDuration("SHUTDOWN_GRACE", defaultGrace)}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }

func (s *Server) Addr() string { return s.srv.Addr }

// Run blocks until the listener fails or ctx ends. In flight requests get
// the shutdown grace before connections are dropped
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", s.grace).Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		return s.srv.Shutdown(sctx)
	})
	return g.Wait()
}
