package manager

import (
	"path/filepath"
	"strings"
	"sync"
)

// Strategy turns a script path plus arguments into the argv used to
// launch it.
type Strategy func(scriptPath string, args []string) []string

// Registry maps file extensions to launch strategies. Unknown
// extensions execute the path directly.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry returns a registry seeded with the built-in script kinds:
// .js runs under node, .bat under the Windows command shell.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(".js", func(scriptPath string, args []string) []string {
		return append([]string{"node", scriptPath}, args...)
	})
	r.Register(".bat", func(scriptPath string, args []string) []string {
		return append([]string{"cmd", "/C", scriptPath}, args...)
	})
	return r
}

// Register adds or replaces the strategy for an extension. The
// extension must include the leading dot.
func (r *Registry) Register(ext string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[strings.ToLower(ext)] = s
}

// Resolve builds the argv for a script invocation.
func (r *Registry) Resolve(scriptPath string, args []string) []string {
	r.mu.RLock()
	s, ok := r.strategies[strings.ToLower(filepath.Ext(scriptPath))]
	r.mu.RUnlock()
	if ok {
		return s(scriptPath, args)
	}
	return append([]string{scriptPath}, args...)
}
