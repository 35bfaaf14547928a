// Package config ties the configuration registry to its on-disk
// representations for the umbra DNS sinkhole.
//
// # Formats
//
// Two formats are understood:
//
//   - the structured TOML document (umbra.toml), the canonical format the
//     subsystem writes back
//   - the legacy flat KEY=value format (pihole-FTL.conf), read-only, kept
//     for migrations from Pi-hole installations
//
// # Precedence
//
// A load starts from the registry defaults, applies the first structured
// document found, then lets the first legacy file found seed only values
// the structured document did not set. The structured format is
// authoritative; the single exception is the privacy level, which any
// source may raise but never lower.
//
// # Search Order
//
// Both formats are searched working-directory first, system path second:
//
//	umbra.toml, /etc/umbra/umbra.toml
//	pihole-FTL.conf, /etc/pihole/pihole-FTL.conf
//
// # Basic Usage
//
// Load the effective configuration:
//
//	provider := config.New()
//	reg, err := provider.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Missing files are not errors; the registry defaults stand in. A
// structured document that fails to parse is skipped entirely so a broken
// file can never half-apply. Per-item problems are logged and collected,
// and the returned registry is fully usable alongside a non-nil error.
//
// # Thread Safety
//
// Loading is thread-safe. Once loaded, the registry should be treated as
// immutable; reload to pick up changes.
package config
