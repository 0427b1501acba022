// Package logger holds the process root zerolog logger and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"csvsplit/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's, aliased so callers need not import it
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string // trace debug info warn error, unknown means info
	Format      string // console or json
	Service     string
	Writer      io.Writer // stdout when nil
	Caller      bool
	SampleEvery int // keep 1 in N lines, 0 and 1 keep all
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
// it uses the raw view because config itself logs
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "info"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", ""),
		Caller:      rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	root     atomic.Pointer[Logger]
	initOnce sync.Once
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Init installs the root logger built from opt, only the first call counts
func Init(opt Options) {
	initOnce.Do(func() { root.Store(New(opt)) })
}

// Get returns the root logger, built from env on first use when Init never ran
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// New builds a logger from opt without touching the root
func New(opt Options) *Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	with := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		with = with.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		with = with.Str("service", opt.Service)
	}
	if opt.Caller {
		with = with.Caller()
	}

	l := with.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return &l
}

// ParseLevel maps a level name to zerolog, warning is accepted for warn
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type reqKey struct{}

// WithRequest stores the request id that C stamps on every line
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, reqKey{}, reqID)
}

// C is the root logger with ctx's request id, if any
func C(ctx context.Context) *Logger {
	id, _ := ctx.Value(reqKey{}).(string)
	if id == "" {
		return Get()
	}
	l := Get().With().Str("request_id", id).Logger()
	return &l
}

// Named tags lines with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
