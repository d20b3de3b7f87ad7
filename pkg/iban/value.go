package iban

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/pgiban/internal/validator"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// IBAN is a validated IBAN in normalized (uppercase) form.
// The zero value holds no IBAN; see IsZero.
type IBAN struct {
	value string
}

// ParseError is returned by Parse and the decoding methods of IBAN.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid iban format for value: %q", e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse validates s and returns it as an IBAN.
func Parse(s string) (IBAN, error) {
	if err := validator.Default().Check(s); err != nil {
		return IBAN{}, &ParseError{Input: s, Err: err}
	}
	return IBAN{value: validator.Normalize(s)}, nil
}

// MustParse is like Parse but panics if s is not a valid IBAN.
func MustParse(s string) IBAN {
	i, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return i
}

// String returns the IBAN in electronic format, e.g. GB29NWBK60161331926819.
func (i IBAN) String() string { return i.value }

// IsZero reports whether i holds no IBAN.
func (i IBAN) IsZero() bool { return i.value == "" }

// Equal reports whether i and other are the same IBAN.
func (i IBAN) Equal(other IBAN) bool {
	return i.value == other.value
}

// CountryCode returns the two-letter country code.
func (i IBAN) CountryCode() string {
	if i.IsZero() {
		return ""
	}
	return i.value[:pgiban.CountryCodeLength]
}

// CheckDigits returns the two check digits.
func (i IBAN) CheckDigits() string {
	if i.IsZero() {
		return ""
	}
	return i.value[pgiban.CountryCodeLength:pgiban.PrefixLength]
}

// BBAN returns the country-specific account part following the check digits.
func (i IBAN) BBAN() string {
	if i.IsZero() {
		return ""
	}
	return i.value[pgiban.PrefixLength:]
}

// PrintFormat returns the IBAN in groups of four separated by spaces,
// e.g. GB29 NWBK 6016 1331 9268 19. The result is for display; Parse
// does not accept it.
func (i IBAN) PrintFormat() string {
	var b strings.Builder
	b.Grow(len(i.value) + len(i.value)/4)
	for n := 0; n < len(i.value); n += 4 {
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(i.value[n:min(n+4, len(i.value))])
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (i IBAN) MarshalText() ([]byte, error) {
	return []byte(i.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text is rejected
// like any other invalid IBAN.
func (i *IBAN) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. The zero IBAN encodes as null.
func (i IBAN) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *IBAN) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = IBAN{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("iban: %w", err)
	}
	return i.UnmarshalText([]byte(s))
}

// Scan implements sql.Scanner. NULL yields the zero IBAN.
func (i *IBAN) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = IBAN{}
		return nil
	case string:
		return i.UnmarshalText([]byte(v))
	case []byte:
		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("iban: cannot scan %T", src)
	}
}

// Value implements driver.Valuer. The zero IBAN is stored as NULL.
func (i IBAN) Value() (driver.Value, error) {
	if i.IsZero() {
		return nil, nil
	}
	return i.value, nil
}

// ScanText implements pgtype.TextScanner.
func (i *IBAN) ScanText(v pgtype.Text) error {
	if !v.Valid {
		*i = IBAN{}
		return nil
	}
	return i.UnmarshalText([]byte(v.String))
}

// TextValue implements pgtype.TextValuer.
func (i IBAN) TextValue() (pgtype.Text, error) {
	if i.IsZero() {
		return pgtype.Text{}, nil
	}
	return pgtype.Text{String: i.value, Valid: true}, nil
}
