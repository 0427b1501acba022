// Package strings holds small string helpers module wiring shares
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix turns " splits/ " into "/splits", a blank or root prefix panics
func MustPrefix(s string) string {
	p := std.Trim(s, " /")
	if p == "" {
		panic("route prefix is required")
	}
	return "/" + p
}
