// Package registry holds the per-country IBAN specifications.
//
// A Registry is built once, either from the compiled-in table (Default) or
// from caller-supplied specifications (New), and is read-only afterwards.
// Construction compiles every structure descriptor and verifies the table's
// invariants, so a Registry that exists is known to be consistent:
//
//   - country codes are unique and consist of two uppercase ASCII letters
//   - 4 + the sum of block repeat counts equals the declared length
//   - every example (when present) belongs to its country and passes both
//     the structure and the checksum
//
// Lookups need no locking; a Registry may be shared across goroutines.
package registry
