// Package checksum implements the ISO 7064 MOD 97-10 check used by IBANs.
//
// The check runs in three steps:
//
//  1. Move the country code and check digits (the first four characters) to the end.
//  2. Expand every character to decimal: digits stay as they are, letters become
//     two digits (A=10 ... Z=35).
//  3. Reduce the resulting digit string modulo 97 in chunks: the first nine
//     digits, then the previous remainder (two digits, zero padded) followed by
//     up to seven further digits, until the string is consumed.
//
// An IBAN passes iff the final remainder is 1. Chunking keeps every
// intermediate value below 10^9, so no big-integer arithmetic is needed.
//
// # Example Usage
//
//	calc := checksum.New()
//	if calc.Verify("GB29NWBK60161331926819") {
//		// checksum holds
//	}
//
// # Thread Safety
//
// Mod97 is a zero-size value type and is safe for concurrent use by multiple goroutines.
package checksum
