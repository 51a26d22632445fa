package tech

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrUnknownTechnology is returned by [Get] when no technology with
	// the requested name has been registered.
	ErrUnknownTechnology = errors.New("unknown technology")

	// ErrDuplicateTechnology is returned by [Register] when a technology
	// with the same name is already registered.
	ErrDuplicateTechnology = errors.New("technology already registered")
)

var (
	regMu    sync.RWMutex
	registry = map[string]*Technology{
		"generic": Generic(),
	}
)

// Register adds a technology to the process registry, typically after
// loading it from a TOML file. Returns ErrDuplicateTechnology if the
// name is taken.
func Register(t *Technology) error {
	if t.Name == "" {
		return fmt.Errorf("technology name must not be empty")
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[t.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTechnology, t.Name)
	}
	registry[t.Name] = t
	return nil
}

// Get returns the registered technology with the given name.
// Returns an error wrapping ErrUnknownTechnology if it does not exist.
func Get(name string) (*Technology, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownTechnology, name, names())
	}
	return t, nil
}

// Names returns the registered technology names in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return names()
}

func names() []string {
	return slices.Sorted(maps.Keys(registry))
}
