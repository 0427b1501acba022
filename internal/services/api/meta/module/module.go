// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"csvsplit/internal/modkit"
	"csvsplit/internal/modkit/httpkit"
	"csvsplit/internal/modkit/module"
	str "csvsplit/internal/platform/strings"

	metahttp "csvsplit/internal/services/api/meta/http"
)

// Module serves health, readiness, version and service info
type Module struct {
	modkit.Base
	deps metahttp.Deps
}

// New constructs a meta module reporting as serviceName
func New(deps modkit.Deps, serviceName string, opts ...modkit.Option) *Module {
	d := metahttp.Deps{
		ServiceName: str.MustString(serviceName, "service name"),
		StartedAt:   time.Now(),
		Modules:     module.Names,
	}
	// keep nil seams as untyped nil so ready reports them skipped
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	return &Module{
		Base: modkit.NewBase([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		deps: d,
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Ports is nil, meta offers nothing to other modules
func (m *Module) Ports() any { return nil }
