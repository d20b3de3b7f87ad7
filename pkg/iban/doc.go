// Package iban validates International Bank Account Numbers.
//
// Validate and Check run the full validation pipeline (country lookup,
// length, BBAN structure, ISO 7064 MOD 97-10 checksum) against the built-in
// country registry:
//
//	if iban.Validate("GB29NWBK60161331926819") {
//		// accepted
//	}
//
//	if err := iban.Check(input); err != nil {
//		switch {
//		case errors.Is(err, iban.ErrChecksumMismatch):
//			// likely a typo
//		case errors.Is(err, iban.ErrUnknownCountry):
//			// unsupported country
//		}
//	}
//
// Input is uppercased (ASCII only) before validation. Whitespace is never
// stripped, so the spaced print format is rejected; strip it first if your
// input may carry it.
//
// IBAN is an immutable value type holding a validated, normalized IBAN. It
// implements encoding.TextMarshaler, json.Marshaler, sql.Scanner,
// driver.Valuer and the pgx text scanning interfaces, so it can be stored in
// and read from a PostgreSQL text column (or the iban domain installed by
// pgiban) directly.
package iban
