// Package testkit holds helpers shared by the package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var serial sync.Mutex

// Serial holds a process wide lock until t ends, for tests that swap package state
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// Swap sets *p to v and restores the old value when t ends
func Swap[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func recovered(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}

// MustPanic fails t when fn returns normally
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	if recovered(fn) == nil {
		t.Fatalf("expected a panic")
	}
}

// MustNotPanic fails t with the recovered value when fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	if r := recovered(fn); r != nil {
		t.Fatalf("unexpected panic: %v", r)
	}
}

// MustContain fails t unless haystack contains needle, the full haystack is kept in a temp file
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	dump := filepath.Join(t.TempDir(), "haystack.txt")
	_ = os.WriteFile(dump, []byte(haystack), 0o600)
	t.Fatalf("missing %q, output in %s", needle, dump)
}
