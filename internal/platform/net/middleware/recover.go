package middleware

import (
	"net/http"
	"runtime/debug"

	perr "csvsplit/internal/platform/errors"
	"csvsplit/internal/platform/logger"
	pnet "csvsplit/internal/platform/net"
	phttp "csvsplit/internal/platform/net/http"
)

// Recover turns a panic into the usual 500 envelope and logs the stack
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-Id", reqID)
			}
			status, env := phttp.ErrorEnvelope(perr.PanicErrf("internal error"), reqID)
			phttp.JSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
