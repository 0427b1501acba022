// Package net carries the request id between chi, handlers and logs
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID under chi's request id key, empty ids leave ctx alone
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID is the id chi or WithRequest put on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
