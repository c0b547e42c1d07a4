package dialect

import (
	"sort"
	"strings"
	"sync"
)

// DefaultName is the dialect used when none is selected or the selection is unknown.
const DefaultName = "mysql"

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect) // canonical name -> dialect
	aliases    = make(map[string]string)   // alias -> canonical name
)

// Generic is the fallback used when no dialect package has been imported.
var Generic = NewDialect("generic").
	Functions(StandardFunctions...).
	Build()

// Register registers a dialect and its aliases in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	name := strings.ToLower(d.Name)
	dialects[name] = d
	for _, a := range d.Aliases {
		aliases[strings.ToLower(a)] = name
	}
}

// Get returns a dialect by name or alias, case-insensitively.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	key := strings.ToLower(strings.TrimSpace(name))
	if d, ok := dialects[key]; ok {
		return d, true
	}
	if canonical, ok := aliases[key]; ok {
		d, ok := dialects[canonical]
		return d, ok
	}
	return nil, false
}

// Default returns the default dialect, or Generic when it is not registered.
func Default() *Dialect {
	if d, ok := Get(DefaultName); ok {
		return d
	}
	return Generic
}

// Resolve returns the named dialect. Unknown or empty names resolve to
// Default and report false.
func Resolve(name string) (*Dialect, bool) {
	if d, ok := Get(name); ok {
		return d, true
	}
	return Default(), false
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered dialects sorted by name.
func All() []*Dialect {
	names := List()
	out := make([]*Dialect, 0, len(names))
	for _, n := range names {
		if d, ok := Get(n); ok {
			out = append(out, d)
		}
	}
	return out
}
