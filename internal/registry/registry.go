package registry

import (
	"fmt"

	"go.uber.org/atomic"
)

// Registry is the ordered schema of all configuration items. Index order is
// stable across runs and drives serialization; paths are unique. The
// registry assumes a single writer during a configuration load; the derived
// debug bit is the only field safe for concurrent reads.
type Registry struct {
	items  []*Item
	byName map[string]*Item

	// debugAny caches "any debug flag set" so hot paths can check it
	// without walking the items.
	debugAny atomic.Bool
}

// New returns a registry populated with every known item, each set to its
// default value.
func New() *Registry {
	r := &Registry{byName: make(map[string]*Item)}
	for _, it := range defaultItems() {
		if it.Depth() > MaxPathDepth {
			panic(fmt.Sprintf("registry: %s exceeds max path depth %d", it.Name(), MaxPathDepth))
		}
		if _, dup := r.byName[it.Name()]; dup {
			panic("registry: duplicate path " + it.Name())
		}
		r.byName[it.Name()] = it
		r.items = append(r.items, it)
	}
	return r
}

// Len returns the number of items.
func (r *Registry) Len() int { return len(r.items) }

// Get returns the item at the stable index i.
func (r *Registry) Get(i int) *Item { return r.items[i] }

// ByName returns the item with the given dotted path.
func (r *Registry) ByName(name string) (*Item, bool) {
	it, ok := r.byName[name]
	return it, ok
}

// Items returns the items in index order. The slice is a copy; the items
// themselves are shared.
func (r *Registry) Items() []*Item {
	out := make([]*Item, len(r.items))
	copy(out, r.items)
	return out
}
