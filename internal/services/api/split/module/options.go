package module

import (
	"csvsplit/internal/modkit"
	"csvsplit/internal/platform/config"
)

// Options are the split module settings, read from CORE_SPLIT_*
type Options struct {
	DefaultPrefix    string
	DefaultChunkSize int
	MaxChunkSize     int
	MaxUploadBytes   int64
	Stager           string
	TempDir          string
	CountPolicy      string
	AutoMigrate      bool
}

// FromConfig reads with CORE_SPLIT_ prefix, cfg is the root conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_SPLIT_")
	return Options{
		DefaultPrefix:    c.MayString("DEFAULT_PREFIX", "chunked_data"),
		DefaultChunkSize: c.MayInt("DEFAULT_CHUNK_SIZE", 200),
		MaxChunkSize:     c.MayInt("MAX_CHUNK_SIZE", 1_000_000),
		MaxUploadBytes:   int64(c.MayInt("MAX_UPLOAD_BYTES", 32<<20)),
		Stager:           c.MayEnum("STAGER", "memory", "memory", "disk"),
		TempDir:          c.MayString("TEMP_DIR", ""),
		CountPolicy:      c.MayEnum("COUNT_POLICY", "legacy", "legacy", "ceil"),
		AutoMigrate:      c.MayBool("AUTO_MIGRATE", false),
	}
}

// Option adjusts how the split module is mounted
type Option = modkit.Option

var (
	WithPrefix      = modkit.WithPrefix
	WithMiddlewares = modkit.WithMiddlewares
	WithRoutes      = modkit.WithRoutes
)
