package iban

import (
	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/internal/validator"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// Rejection reasons returned (wrapped) by Check and Parse.
var (
	ErrTooShort          = validator.ErrTooShort
	ErrUnknownCountry    = validator.ErrUnknownCountry
	ErrLengthMismatch    = validator.ErrLengthMismatch
	ErrStructureMismatch = validator.ErrStructureMismatch
	ErrChecksumMismatch  = validator.ErrChecksumMismatch
)

// ValidationError describes a rejected input; see Check.
type ValidationError = validator.Error

// Validate reports whether text is a valid IBAN.
func Validate(text string) bool {
	return validator.Default().IsValid(text)
}

// Check validates text. It returns nil or a *ValidationError that matches
// pgiban.ErrInvalidIBAN and one of the Err* reasons under errors.Is.
func Check(text string) error {
	return validator.Default().Check(text)
}

// Specifications returns the supported countries' specifications ordered by
// country code.
func Specifications() []pgiban.Specification {
	return registry.Default().Specifications()
}

// Lookup returns the specification of a country. The code is matched
// case-insensitively.
func Lookup(code string) (pgiban.Specification, bool) {
	entry, ok := registry.Default().Lookup(validator.Normalize(code))
	if !ok {
		return pgiban.Specification{}, false
	}
	return entry.Specification, true
}
