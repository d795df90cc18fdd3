package adapter

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnsupportedLanguage is returned when no front-end is registered for a
// language name.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var (
	registryMu sync.RWMutex
	registry   = map[string]Adapter{}
	order      []string
)

// Register adds a front-end to the global registry. It is meant to be called
// from init functions; registering the same name twice panics.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[a.Name()]; dup {
		panic(fmt.Sprintf("adapter: %s registered twice", a.Name()))
	}
	registry[a.Name()] = a
	order = append(order, a.Name())
}

// Get returns the front-end registered under name.
func Get(name string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if a, ok := registry[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnsupportedLanguage)
}

// ForExtension returns the front-end handling ext (e.g. ".rb"), or nil.
func ForExtension(ext string) Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range order {
		a := registry[name]
		for _, e := range a.Extensions() {
			if e == ext {
				return a
			}
		}
	}
	return nil
}

// Names returns the registered front-end names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
