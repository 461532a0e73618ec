package vcs

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a Provider from a token and base URL. Implementations
// register themselves at init time. ghrev only ships a GitHub provider; the
// indirection exists so GitHub Enterprise setups and test doubles stay cheap
// to plug in.
type Factory func(token, baseURL string) (Provider, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a provider factory under the given name. It panics if the
// name is already taken.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("vcs: factory already registered for %q", name))
	}
	factories[name] = f
}

// Get creates a provider instance by name.
func Get(name string, token, baseURL string) (Provider, error) {
	mu.RLock()
	f, exists := factories[name]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("vcs: unknown provider %q (registered: %v)", name, registeredNames())
	}
	return f(token, baseURL)
}

func registeredNames() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
