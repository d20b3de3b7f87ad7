// Package validator decides whether a string is a valid IBAN.
//
// Validation runs a fixed pipeline and stops at the first failing step:
//
//  1. Normalize: ASCII letters are uppercased. Nothing else changes, so an
//     IBAN in its spaced print format is rejected.
//  2. Reject input shorter than four characters.
//  3. Look up the country code (the first two characters).
//  4. Compare the total length with the country's length.
//  5. Match the BBAN (everything after the check digits) against the
//     country's structure.
//  6. Verify the ISO 7064 MOD 97-10 checksum over the whole input.
//
// A rejected input is not a fault. IsValid returns false; Check returns an
// *Error naming the failed step. Neither panics for any string.
package validator
