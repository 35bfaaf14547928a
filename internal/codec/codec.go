package codec

import "github.com/lc/umbra/internal/registry"

// Codec applies one parsed source document to the registry. Implementations
// recover per-item problems locally; the returned error aggregates the
// per-item diagnostics and the registry is fully usable even when it is
// non-nil.
type Codec interface {
	Apply(reg *registry.Registry) error
}
