// Package pgext installs IBAN validation into a PostgreSQL schema.
//
// The installed objects mirror the Go engine and are generated from the same
// registry:
//
//   - table iban_specification: one row per country (length, structure,
//     POSIX pattern of the BBAN, example)
//   - function iban_mod97(text): ISO 7064 MOD 97-10 remainder
//   - function iban_validate(text) RETURNS boolean
//   - domain iban: text constrained by iban_validate
//
// Render produces the script; Installer runs it in a single transaction.
package pgext
