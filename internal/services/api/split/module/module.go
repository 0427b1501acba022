// Package module wires splits into the API using modkit
package module

import (
	"context"
	"time"

	"csvsplit/internal/core/splitter"
	"csvsplit/internal/modkit"
	"csvsplit/internal/modkit/httpkit"
	"csvsplit/internal/modkit/repokit"
	"csvsplit/internal/platform/store"

	splithttp "csvsplit/internal/services/api/split/http"
	splitrepo "csvsplit/internal/services/api/split/repo"
	splitsvc "csvsplit/internal/services/api/split/service"
)

// migrateLockTimeout bounds how long schema creation waits on a busy table
const migrateLockTimeout = 5 * time.Second

// Module is the split module
type Module struct {
	modkit.Base

	svc       splitsvc.Service
	maxUpload int64
}

// New constructs the split module, o usually comes from FromConfig
func New(deps modkit.Deps, o Options, opts ...Option) *Module {
	st, err := splitter.ParseStager(o.Stager, o.TempDir)
	if err != nil {
		panic("split module: " + err.Error())
	}
	count, err := splitter.ParseCountPolicy(o.CountPolicy)
	if err != nil {
		panic("split module: " + err.Error())
	}

	var events splitrepo.EventSink
	if deps.CH != nil {
		events = splitrepo.NewCHEvents(deps.CH)
	}

	return &Module{
		Base: modkit.NewBase([]modkit.Option{modkit.WithName("split"), modkit.WithPrefix("/splits")}, opts...),
		svc: splitsvc.New(splitsvc.Config{
			DefaultPrefix:    o.DefaultPrefix,
			DefaultChunkSize: o.DefaultChunkSize,
			MaxChunkSize:     o.MaxChunkSize,
			Count:            count,
			Stager:           st,
		}, deps.PG, splitrepo.NewPG(), events),
		maxUpload: o.MaxUploadBytes,
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) {
		splithttp.Register(rr, m.svc, splithttp.Options{MaxUploadBytes: m.maxUpload})
	})
}

// Migrate creates the ledger table and the events table on whichever stores are on
func Migrate(ctx context.Context, pg repokit.TxRunner, ch store.Clickhouse) error {
	if pg != nil {
		tx := repokit.WithBeginHooks(pg, repokit.SetLocal("lock_timeout", migrateLockTimeout.String()))
		err := tx.Tx(ctx, func(q repokit.Queryer) error { return splitrepo.EnsureSchema(ctx, q) })
		if err != nil {
			return err
		}
	}
	if ch != nil {
		if err := splitrepo.EnsureEvents(ctx, ch); err != nil {
			return err
		}
	}
	return nil
}
