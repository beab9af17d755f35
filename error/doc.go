// Package error provides the structured error value shared by a host
// application and the foreign runtimes it embeds.
//
// It exposes a single concrete type Error that implements contract.Error and
// integrates with the standard library's errors helpers (Is/As) via Unwrap.
//
// Key characteristics:
//   - Numeric Code, defaulting to 500, with a canonical Title for standard codes
//   - Human-readable Message
//   - Ordered field-error map (Fields) keyed by dotted path
//   - Optional opaque native payload, only ever inspected by runtime bridges
//   - Immutable values: every transform returns a new Error
//
// Construction helpers are New, NewWithCode, NewWithErrors, Pathed and the
// option-based E. Ensure and Prefix adapt arbitrary errors as they propagate.
// Serializable is the JSON projection used to carry an Error through a
// string-only channel.
package error
