// Package structure compiles BBAN structure descriptors into matchers.
//
// A descriptor is a sequence of fixed 3-character blocks. Each block is a
// character-class tag followed by a two-digit decimal repeat count:
//
//	F04F04A12  =  4 digits, 4 digits, 12 alphanumerics
//
// Tags:
//
//	F  0-9
//	L  A-Z
//	U  A-Z
//	A  0-9A-Z
//	B  0-9A-Z
//	W  0-9A-Z
//	C  A-Z
//
// Unknown tags are compile errors; a compiled Matcher never meets an unmapped
// tag at match time.
//
// Matchers are immutable and safe for concurrent use.
package structure
