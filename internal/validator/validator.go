package validator

import (
	"fmt"
	"sync"

	"github.com/vvka-141/pgiban/internal/checksum"
	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// Validator checks IBANs against a registry. It holds no mutable state and is
// safe for concurrent use.
type Validator struct {
	registry *registry.Registry
	checksum checksum.Calculator
}

// New creates a validator backed by reg.
func New(reg *registry.Registry) *Validator {
	return &Validator{
		registry: reg,
		checksum: checksum.New(),
	}
}

var defaultValidator = sync.OnceValue(func() *Validator {
	return New(registry.Default())
})

// Default returns a validator backed by the built-in registry.
func Default() *Validator {
	return defaultValidator()
}

// Registry returns the registry the validator consults.
func (v *Validator) Registry() *registry.Registry {
	return v.registry
}

// IsValid reports whether raw is a valid IBAN.
func (v *Validator) IsValid(raw string) bool {
	return v.Check(raw) == nil
}

// Check validates raw and returns nil or an *Error naming the failed step.
func (v *Validator) Check(raw string) error {
	s := Normalize(raw)

	if len(s) < pgiban.MinLength {
		return &Error{Input: raw, Reason: ErrTooShort}
	}

	country := s[:pgiban.CountryCodeLength]
	bban := s[pgiban.PrefixLength:]

	entry, ok := v.registry.Lookup(country)
	if !ok {
		return &Error{Input: raw, Reason: ErrUnknownCountry, Detail: fmt.Sprintf("%q", country)}
	}

	if len(s) != entry.Specification.Length {
		return &Error{
			Input:  raw,
			Reason: ErrLengthMismatch,
			Detail: fmt.Sprintf("%s requires %d characters, got %d", country, entry.Specification.Length, len(s)),
		}
	}

	if !entry.Matcher.Match(bban) {
		return &Error{
			Input:  raw,
			Reason: ErrStructureMismatch,
			Detail: fmt.Sprintf("expected %s", entry.Matcher.Descriptor()),
		}
	}

	if !v.checksum.Verify(s) {
		return &Error{Input: raw, Reason: ErrChecksumMismatch}
	}

	return nil
}

// Normalize uppercases the ASCII letters of raw. Other bytes, whitespace
// included, are left untouched.
func Normalize(raw string) string {
	i := 0
	for ; i < len(raw); i++ {
		if raw[i] >= 'a' && raw[i] <= 'z' {
			break
		}
	}
	if i == len(raw) {
		return raw
	}

	b := []byte(raw)
	for ; i < len(b); i++ {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}
