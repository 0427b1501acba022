// Package module is the process registry of mounted modules and their ports
package module

import (
	"slices"
	"sync"
)

var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register records a mounted module under name with its ports, nil ports are fine
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs returns name's ports when they are a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := reg[name].(T)
	return p, ok
}

// Names lists registered modules in sorted order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	clear(reg)
	mu.Unlock()
}
