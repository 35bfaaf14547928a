// Package registry defines the configuration schema of the umbra daemon:
// an ordered collection of typed configuration items, addressable both by a
// stable integer index and by their dotted table path.
//
// # Data Model
//
// Every setting is an Item carrying a hierarchical path (at most MaxPathDepth
// segments), an optional flat-format legacy key, a Kind tag, the current
// Value, the Default used when no source provides the setting, and a short
// help text surfaced in warnings.
//
// Two invariants hold at all times:
//   - an Item's Value always matches its Kind, and
//   - no Item is ever uninitialized: absence of a source value means the
//     Value equals the Default.
//
// # Addressing
//
// Items are stored in declaration order. The index order is stable across
// runs and drives deterministic serialization of the structured document.
// Paths are unique; New panics on a duplicate, which would be a programming
// error in the schema table.
//
// # Debug Flags
//
// The debug categories live in the registry like any other Bool item (under
// the "debug" table) so they participate in both persistence formats. The
// derived bitmask and the "any flag set" boolean are computed from those
// items with RecomputeDebug.
//
// The registry itself is pure storage plus lookup. Validation, clamping and
// enum token mapping live in the codec package; the registry assumes a
// single writer during a configuration load.
package registry
