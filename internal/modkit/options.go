package modkit

import (
	"net/http"

	"csvsplit/internal/modkit/httpkit"
)

// Option adjusts a module's Base
type Option func(*Base)

func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix overrides where the module is mounted under /api/v1
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends module scoped middleware, first runs outermost
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// WithRoutes registers extra routes next to the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}
