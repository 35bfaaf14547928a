package registry

import "strings"

// MaxPathDepth bounds how deep an item may sit in the structured document.
// Resolving a path walks Depth()-1 table lookups before addressing the leaf.
const MaxPathDepth = 4

// Origin records which source last set an item's value. The loader uses it
// to keep the structured document authoritative over the legacy file.
type Origin uint8

const (
	OriginDefault Origin = iota
	OriginStructured
	OriginLegacy
)

func (o Origin) String() string {
	switch o {
	case OriginStructured:
		return "structured"
	case OriginLegacy:
		return "legacy"
	}
	return "default"
}

// Item is one schema entry: a typed value addressable by its table path and,
// when a flat-format alias exists, by its legacy key.
type Item struct {
	// Path locates the item in the structured document, e.g.
	// ["dns", "blockingmode"].
	Path []string
	// LegacyKey is the flat-format alias, empty when the item has none.
	LegacyKey string
	// Kind tags the payload type. Value and Default always match it.
	Kind    Kind
	Value   Value
	Default Value
	// Help describes the accepted values; surfaced in warnings.
	Help string

	origin Origin
}

// Name returns the dotted path, e.g. "dns.blockingmode".
func (it *Item) Name() string { return strings.Join(it.Path, ".") }

// Leaf returns the final path segment, the key inside the parent table.
func (it *Item) Leaf() string { return it.Path[len(it.Path)-1] }

// Depth returns the number of path segments.
func (it *Item) Depth() int { return len(it.Path) }

// Set replaces the current value and records where it came from.
func (it *Item) Set(v Value, o Origin) {
	it.Value = v
	it.origin = o
}

// Origin reports which source last set the value.
func (it *Item) Origin() Origin { return it.origin }

// IsDefault reports whether the current value still equals the default.
func (it *Item) IsDefault() bool { return it.Value.Equal(it.Default) }
