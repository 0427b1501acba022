package repokit

import "context"

// BeginHook runs first inside each transaction, on the tx
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns inner with hooks run at the start of every Tx
// statements outside Tx go straight to inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// SetLocal sets a postgres setting for the rest of the transaction, e.g. lock_timeout
func SetLocal(name, value string) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, "select set_config($1, $2, true)", name, value)
		return err
	}
}
