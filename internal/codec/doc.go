// Package codec translates configuration documents into registry values and
// back. Two decoders implement the same Codec capability and are driven by
// the same registry walk, so a new configuration item declared in the schema
// automatically participates in both formats:
//
//   - Structured reads the canonical nested TOML document. It is strict:
//     enum tokens match case-sensitively and a syntax error rejects the
//     whole document before any registry value is touched.
//   - Legacy reads the flat KEY=value migration format through a Scanner.
//     It is forgiving: boolean tokens match case-insensitively and numeric
//     values are clamped or ignored per key.
//
// Encode performs the reverse direction, serializing the registry as the
// canonical TOML document with value-correct escaping.
//
// Per-item problems never abort a pass. A malformed value logs a warning
// naming the accepted options (the item help text) and leaves the item's
// current value, which is the default unless an earlier source set it.
package codec
