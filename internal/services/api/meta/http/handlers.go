// Package http serves the meta routes: liveness, readiness, build and process info
package http

import (
	"context"
	"net/http"
	"time"

	"csvsplit/internal/core/version"
	"csvsplit/internal/modkit/httpkit"
	"csvsplit/internal/platform/store"
)

// probeTimeout caps each readiness ping
const probeTimeout = 2 * time.Second

// Deps is what the meta routes report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// PG and CH are the open backends, nil when off
	PG any
	CH any

	// Modules lists what is mounted, nil reports none
	Modules func() []string
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary  Liveness
// @Tags     Meta
// @Produce  json
// @Success  200 {object} HealthResponse
// @Router   /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

// probe pings backend when it can, a nil backend is skipped
func probe(ctx context.Context, name string, backend any) ReadyCheck {
	if backend == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := backend.(store.Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary  Readiness, pings postgres and clickhouse when enabled
// @Tags     Meta
// @Produce  json
// @Success  200 {object} ReadyResponse
// @Router   /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	res := ReadyResponse{
		Status: "ok",
		Checks: []ReadyCheck{probe(ctx, "pg", h.PG), probe(ctx, "ch", h.CH)},
	}
	for _, c := range res.Checks {
		switch {
		case c.Status == "fail":
			res.Status = "fail"
		case c.Status == "unknown" && res.Status == "ok":
			res.Status = "degraded"
		}
	}
	res.Now = stamp(time.Now())
	return res, nil
}

// @Summary  Build info
// @Tags     Meta
// @Produce  json
// @Success  200 {object} version.BuildInfo
// @Router   /meta/version [get]
func (h handlers) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary  Process info, uptime and mounted modules
// @Tags     Meta
// @Produce  json
// @Success  200 {object} ServiceResponse
// @Router   /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	mods := []string{}
	if h.Modules != nil {
		mods = h.Modules()
	}
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
		Modules: mods,
	}, nil
}
