// Package modkit declares api modules and mounts them under their prefix
package modkit

import (
	"net/http"

	"csvsplit/internal/modkit/httpkit"
	"csvsplit/internal/modkit/repokit"
	"csvsplit/internal/platform/config"
	"csvsplit/internal/platform/logger"
	"csvsplit/internal/platform/store"
	str "csvsplit/internal/platform/strings"
)

// Deps is what every module gets, PG and CH are nil when that store is off
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Module is one mountable slice of the api
type Module interface {
	Name() string
	Prefix() string
	MountRoutes(r httpkit.Router)

	// Ports is what the module offers other modules, nil when nothing
	Ports() any
}

// Base holds the naming and mounting every module shares, embed it
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	extra  []func(httpkit.Router)
}

// NewBase applies defaults then opts
func NewBase(defaults []Option, opts ...Option) Base {
	var b Base
	for _, o := range append(defaults, opts...) {
		o(&b)
	}
	return b
}

func (b Base) Name() string   { return str.MustString(b.name, "module name") }
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Mount opens the module prefix on r, applies its middleware, then
// registers routes followed by any WithRoutes extras
func (b Base) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		if len(b.mw) > 0 {
			rr.Use(b.mw...)
		}
		routes(rr)
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}
