package validator

import (
	"errors"
	"fmt"

	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// Rejection reasons, in pipeline order.
var (
	ErrTooShort          = errors.New("too short")
	ErrUnknownCountry    = errors.New("unknown country code")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrStructureMismatch = errors.New("structure mismatch")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
)

// Error describes a rejected input.
type Error struct {
	// Input is the value exactly as the caller passed it.
	Input string

	// Reason is one of the Err* rejection reasons.
	Reason error

	// Detail adds context to Reason, e.g. the expected length. Optional.
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid iban %q: %s", e.Input, e.Explanation())
}

// Explanation is the reason and its detail without the input, e.g.
// "length mismatch (DE requires 22 characters, got 21)".
func (e *Error) Explanation() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v (%s)", e.Reason, e.Detail)
	}
	return e.Reason.Error()
}

// Unwrap exposes both the reason and pgiban.ErrInvalidIBAN to errors.Is.
func (e *Error) Unwrap() []error {
	return []error{e.Reason, pgiban.ErrInvalidIBAN}
}

// ReasonOf returns the rejection reason carried by err, or nil if err is not
// a validation error.
func ReasonOf(err error) error {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return nil
}
