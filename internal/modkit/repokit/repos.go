// Package repokit is the seam between repos and the store
package repokit

import "csvsplit/internal/platform/store"

type (
	// Queryer is what a bound repo runs statements against, a pool or a tx
	Queryer = store.RowQuerier

	TxRunner = store.TxRunner
)
