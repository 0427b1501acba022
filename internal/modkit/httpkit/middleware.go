package httpkit

import (
	"net/http"
	"time"

	"csvsplit/internal/platform/net/middleware"

	"github.com/klauspost/compress/flate"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Timeout bounds each request, zero means 60s
	Timeout time.Duration

	// SlowRequest marks access log lines as warn, zero means 2s
	SlowRequest time.Duration

	CORSOrigins []string
}

// CommonStack is the middleware every api module runs behind, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger(),
		middleware.AccessLog(o.SlowRequest),
		middleware.Recover,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat(APIV1 + "/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
