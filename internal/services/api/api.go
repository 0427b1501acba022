// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"csvsplit/internal/platform/config"
	"csvsplit/internal/platform/logger"
	phttp "csvsplit/internal/platform/net/http"
	"csvsplit/internal/platform/store"

	"csvsplit/internal/modkit"
	"csvsplit/internal/modkit/httpkit"
	"csvsplit/internal/modkit/module"
	"csvsplit/internal/modkit/swaggerkit"

	"csvsplit/internal/services/api/docs"
	metamod "csvsplit/internal/services/api/meta/module"
	splitmod "csvsplit/internal/services/api/split/module"
)

// ServiceName is what meta endpoints and client info report
const ServiceName = "csvsplit-api"

// Options carry what cmd/csvsplit-api has already opened. Config is the
// root conf, modules apply their own prefixes
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	EnableSwagger, EnableProfiler bool
}

func depsOf(opt Options) modkit.Deps {
	d := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		d.Log = *opt.Logger
	}
	if opt.Store != nil {
		d.PG = opt.Store.PG
		d.CH = opt.Store.CH
	}
	return d
}

// stackOf reads CORE_API_REQUEST_TIMEOUT, CORE_API_SLOW_REQUEST and CORE_API_CORS_ORIGINS
func stackOf(root config.Conf) httpkit.StackOptions {
	c := root.Prefix("CORE_API_")
	return httpkit.StackOptions{
		Timeout:     c.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
		SlowRequest: c.MayDuration("SLOW_REQUEST", 2*time.Second),
		CORSOrigins: c.MayCSV("CORS_ORIGINS", nil),
	}
}

// Mount wires docs, the profiler and every module under /v1
func Mount(r phttp.Router, opt Options) {
	deps := depsOf(opt)

	mods := []modkit.Module{
		metamod.New(deps, ServiceName),
		splitmod.New(deps, splitmod.FromConfig(deps.Cfg)),
	}

	swaggerkit.Mount(r, opt.EnableSwagger, docs.SwaggerInfo.ReadDoc)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(stackOf(opt.Config))
	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			// ports are published before routes so handlers can look peers up
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
		}
	})
}

// Migrate applies module schemas when CORE_SPLIT_AUTO_MIGRATE is on
func Migrate(ctx context.Context, opt Options) error {
	if !splitmod.FromConfig(opt.Config).AutoMigrate {
		return nil
	}
	deps := depsOf(opt)
	return splitmod.Migrate(ctx, deps.PG, deps.CH)
}
