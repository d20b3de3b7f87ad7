package structure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/pgiban/pkg/pgiban"
)

const blockWidth = 3

// Matcher accepts strings that follow a compiled structure descriptor.
type Matcher struct {
	descriptor string
	blocks     []pgiban.Block
	length     int
}

// Compile parses descriptor into a Matcher.
// Errors wrap pgiban.ErrInvalidStructure.
func Compile(descriptor string) (Matcher, error) {
	if descriptor == "" {
		return Matcher{}, fmt.Errorf("empty descriptor: %w", pgiban.ErrInvalidStructure)
	}
	if len(descriptor)%blockWidth != 0 {
		return Matcher{}, fmt.Errorf("descriptor %q: length %d is not a multiple of %d: %w",
			descriptor, len(descriptor), blockWidth, pgiban.ErrInvalidStructure)
	}

	m := Matcher{
		descriptor: descriptor,
		blocks:     make([]pgiban.Block, 0, len(descriptor)/blockWidth),
	}

	for i := 0; i < len(descriptor); i += blockWidth {
		block, err := parseBlock(descriptor[i : i+blockWidth])
		if err != nil {
			return Matcher{}, fmt.Errorf("descriptor %q, block %d: %w", descriptor, i/blockWidth+1, err)
		}
		m.blocks = append(m.blocks, block)
		m.length += block.Repeat
	}

	return m, nil
}

// MustCompile is like Compile but panics if the descriptor cannot be parsed.
func MustCompile(descriptor string) Matcher {
	m, err := Compile(descriptor)
	if err != nil {
		panic(err)
	}
	return m
}

func parseBlock(raw string) (pgiban.Block, error) {
	class := pgiban.CharClass(raw[0])
	if !class.IsValid() {
		return pgiban.Block{}, fmt.Errorf("unknown tag %q: %w", raw[0], pgiban.ErrInvalidStructure)
	}

	count := raw[1:]
	if !isDigit(count[0]) || !isDigit(count[1]) {
		return pgiban.Block{}, fmt.Errorf("repeat count %q is not a two-digit number: %w", count, pgiban.ErrInvalidStructure)
	}

	repeat := int(count[0]-'0')*10 + int(count[1]-'0')
	if repeat == 0 {
		return pgiban.Block{}, fmt.Errorf("zero repeat count for tag %q: %w", raw[0], pgiban.ErrInvalidStructure)
	}

	return pgiban.Block{Class: class, Repeat: repeat}, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Match reports whether s is exactly the concatenation of every block's
// characters, in order.
func (m Matcher) Match(s string) bool {
	if len(s) != m.length || m.length == 0 {
		return false
	}

	pos := 0
	for _, block := range m.blocks {
		for end := pos + block.Repeat; pos < end; pos++ {
			if !block.Class.Allows(s[pos]) {
				return false
			}
		}
	}
	return true
}

// Blocks returns a copy of the compiled blocks.
func (m Matcher) Blocks() []pgiban.Block {
	out := make([]pgiban.Block, len(m.blocks))
	copy(out, m.blocks)
	return out
}

// Len returns the number of characters a matching string has.
func (m Matcher) Len() int {
	return m.length
}

// Descriptor returns the source descriptor.
func (m Matcher) Descriptor() string {
	return m.descriptor
}

// Pattern returns an anchored POSIX regular expression accepting the same
// strings as Match, one capture group per block:
//
//	F04A12  ->  ^([0-9]{4})([0-9A-Z]{12})$
func (m Matcher) Pattern() string {
	var b strings.Builder
	b.WriteByte('^')
	for _, block := range m.blocks {
		b.WriteString("([")
		b.WriteString(block.Class.CharSet())
		b.WriteString("]{")
		b.WriteString(strconv.Itoa(block.Repeat))
		b.WriteString("})")
	}
	b.WriteByte('$')
	return b.String()
}

// String returns the descriptor.
func (m Matcher) String() string {
	return m.descriptor
}
