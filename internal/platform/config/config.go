// Package config reads settings from prefixed environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"csvsplit/internal/platform/logger"
)

// Conf is a view over the env under one prefix, e.g. CORE_SPLIT_
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) (name, val string) {
	name = c.prefix + key
	return name, strings.TrimSpace(os.Getenv(name))
}

// may parses key with parse, empty gives def and a bad value logs a warning and gives def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).Msg("invalid env value, using default")
		return def
	}
	return v
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	name, s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return s
}

func (c Conf) MayString(key, def string) string {
	if _, s := c.lookup(key); s != "" {
		return s
	}
	return def
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration takes Go durations like 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma list and drops blanks, an all blank list gives def
func (c Conf) MayCSV(key string, def []string) []string {
	_, s := c.lookup(key)
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed, case insensitively
// an unset key gives def, anything else panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return s
		}
	}
	logger.Get().Panic().Str("key", name).Str("value", s).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
