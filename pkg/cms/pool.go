package cms

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Pool stores plugins by name, providing discovery and duplication
// safeguards.
type Pool struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin by its Name(). Duplicate names return an error.
func (p *Pool) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cms: plugin is required")
	}
	name := strings.TrimSpace(plugin.Name())
	if name == "" {
		return fmt.Errorf("cms: plugin name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.plugins[name]; exists {
		return fmt.Errorf("cms: plugin %q already registered", name)
	}
	p.plugins[name] = plugin
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (p *Pool) MustRegister(plugin Plugin) {
	if err := p.Register(plugin); err != nil {
		panic(err)
	}
}

// Get retrieves a plugin by name.
func (p *Pool) Get(name string) (Plugin, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	plugin, ok := p.plugins[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("cms: plugin %q not found", name)
	}
	return plugin, nil
}

// List returns the registered plugin names, sorted.
func (p *Pool) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.plugins))
	for name := range p.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a plugin is registered.
func (p *Pool) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.plugins[strings.TrimSpace(name)]
	return ok
}
