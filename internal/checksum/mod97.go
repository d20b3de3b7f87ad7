package checksum

import (
	"errors"
	"fmt"
)

// ErrInvalidCharacter is returned when the input holds a character outside 0-9A-Z.
var ErrInvalidCharacter = errors.New("invalid character")

const (
	modulus        = 97
	rotation       = 4
	firstChunkSize = 9
	chunkSize      = 7
)

// Calculator computes IBAN check values.
type Calculator interface {
	// Remainder returns the MOD 97-10 remainder of the rearranged input.
	Remainder(iban string) (int, error)

	// Verify reports whether the remainder is 1.
	Verify(iban string) bool
}

// Mod97 implements Calculator using ISO 7064 MOD 97-10.
//
// Input is expected to be uppercase already; lowercase letters are rejected
// like any other character outside 0-9A-Z.
type Mod97 struct{}

// New creates a MOD 97-10 calculator.
// Returns by value to avoid heap allocation (Mod97 is a zero-size type).
func New() Mod97 {
	return Mod97{}
}

// Remainder rearranges iban, expands it to digits and reduces it modulo 97.
// Inputs shorter than four characters are not rearranged.
func (c Mod97) Remainder(iban string) (int, error) {
	// 34 characters expand to at most 68 digits; longer input grows the slice.
	var buf [2 * 34]byte

	digits := buf[:0]
	var err error
	if len(iban) < rotation {
		digits, err = expand(digits, iban, 0)
	} else {
		digits, err = expand(digits, iban[rotation:], rotation)
		if err == nil {
			digits, err = expand(digits, iban[:rotation], 0)
		}
	}
	if err != nil {
		return 0, err
	}

	return reduce(digits), nil
}

// Verify reports whether iban passes the MOD 97-10 check.
func (c Mod97) Verify(iban string) bool {
	r, err := c.Remainder(iban)
	return err == nil && r == 1
}

// expand appends the decimal expansion of s to dst. offset is the position of
// s within the original input and only serves error reporting.
func expand(dst []byte, s string, offset int) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			dst = append(dst, ch)
		case ch >= 'A' && ch <= 'Z':
			v := ch - 'A' + 10
			dst = append(dst, '0'+v/10, '0'+v%10)
		default:
			return dst, fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, ch, offset+i)
		}
	}
	return dst, nil
}

// reduce computes digits mod 97. A string shorter than the first chunk is
// reduced in one step.
func reduce(digits []byte) int {
	if len(digits) < firstChunkSize {
		return parse(digits) % modulus
	}

	remainder := parse(digits[:firstChunkSize]) % modulus
	for i := firstChunkSize; i < len(digits); i += chunkSize {
		end := min(i+chunkSize, len(digits))
		chunk := digits[i:end]
		// Prepending the two-digit remainder is a shift by the chunk width.
		remainder = (remainder*pow10(len(chunk)) + parse(chunk)) % modulus
	}
	return remainder
}

// parse converts at most nine ASCII digits to an int.
func parse(digits []byte) int {
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	return n
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}
