package password

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrValidatorNotFound is returned when configuration references a validator
// identifier that has not been registered. This is a configuration error and
// is surfaced at load time rather than silently dropping the entry.
var ErrValidatorNotFound = errors.New("validator not registered")

// Factory constructs a Validator from its configured parameter map.
type Factory func(params map[string]any) (Validator, error)

var registry = struct {
	sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a validator factory available under the given identifier.
// Registration typically happens from init functions; registering the same
// identifier twice panics, as that is always a programming error.
func Register(name string, factory Factory) {
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.factories[name]; dup {
		panic(fmt.Sprintf("password: validator %q registered twice", name))
	}
	registry.factories[name] = factory
}

// lookup returns the factory registered under name.
func lookup(name string) (Factory, bool) {
	registry.RLock()
	defer registry.RUnlock()
	f, ok := registry.factories[name]
	return f, ok
}

// registeredNames returns all registered identifiers, sorted.
func registeredNames() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("levenshtein", NewLevenshteinValidator)
	Register("strength", NewStrengthValidator)
}
