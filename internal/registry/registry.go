package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vvka-141/pgiban/internal/checksum"
	"github.com/vvka-141/pgiban/internal/structure"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// Entry is a specification together with its compiled structure.
type Entry struct {
	Specification pgiban.Specification
	Matcher       structure.Matcher
}

// Registry maps country codes to their entries.
type Registry struct {
	entries map[string]Entry
	codes   []string
}

// New builds a registry from specs. All faults are reported together;
// every error wraps pgiban.ErrInvalidSpecification.
func New(specs []pgiban.Specification) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry, len(specs)),
		codes:   make([]string, 0, len(specs)),
	}

	var errs []error
	for _, spec := range specs {
		entry, err := compile(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := r.entries[spec.CountryCode]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate country code: %w", spec.CountryCode, pgiban.ErrInvalidSpecification))
			continue
		}
		r.entries[spec.CountryCode] = entry
		r.codes = append(r.codes, spec.CountryCode)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.Sort(r.codes)
	return r, nil
}

func compile(spec pgiban.Specification) (Entry, error) {
	code := spec.CountryCode
	if !isCountryCode(code) {
		return Entry{}, fmt.Errorf("%q: country code must be two uppercase letters: %w", code, pgiban.ErrInvalidSpecification)
	}

	if spec.Length <= pgiban.PrefixLength || spec.Length > pgiban.MaxLength {
		return Entry{}, fmt.Errorf("%s: length %d outside %d..%d: %w",
			code, spec.Length, pgiban.PrefixLength+1, pgiban.MaxLength, pgiban.ErrInvalidSpecification)
	}

	m, err := structure.Compile(spec.Structure)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w: %w", code, pgiban.ErrInvalidSpecification, err)
	}

	if pgiban.PrefixLength+m.Len() != spec.Length {
		return Entry{}, fmt.Errorf("%s: structure %s describes %d characters, length %d requires %d: %w",
			code, spec.Structure, m.Len(), spec.Length, spec.BBANLength(), pgiban.ErrInvalidSpecification)
	}

	if spec.Example != "" {
		if err := verifyExample(spec, m); err != nil {
			return Entry{}, fmt.Errorf("%s: example %q: %w: %w", code, spec.Example, err, pgiban.ErrInvalidSpecification)
		}
	}

	return Entry{Specification: spec, Matcher: m}, nil
}

func verifyExample(spec pgiban.Specification, m structure.Matcher) error {
	ex := spec.Example
	switch {
	case len(ex) != spec.Length:
		return fmt.Errorf("length %d", len(ex))
	case ex[:pgiban.CountryCodeLength] != spec.CountryCode:
		return errors.New("country code mismatch")
	case !m.Match(ex[pgiban.PrefixLength:]):
		return errors.New("structure mismatch")
	case !checksum.New().Verify(ex):
		return errors.New("checksum mismatch")
	}
	return nil
}

func isCountryCode(s string) bool {
	return len(s) == pgiban.CountryCodeLength &&
		s[0] >= 'A' && s[0] <= 'Z' &&
		s[1] >= 'A' && s[1] <= 'Z'
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := New(table)
	if err != nil {
		panic(fmt.Sprintf("built-in IBAN table is inconsistent: %v", err))
	}
	return r
})

// Default returns the registry built from the compiled-in table.
// It is constructed on first use and shared afterwards.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the entry for a country code. Codes are matched exactly;
// callers normalize case first.
func (r *Registry) Lookup(code string) (Entry, bool) {
	e, ok := r.entries[code]
	return e, ok
}

// Codes returns the registered country codes in ascending order.
func (r *Registry) Codes() []string {
	return slices.Clone(r.codes)
}

// Specifications returns every specification ordered by country code.
func (r *Registry) Specifications() []pgiban.Specification {
	specs := make([]pgiban.Specification, 0, len(r.codes))
	for _, code := range r.codes {
		specs = append(specs, r.entries[code].Specification)
	}
	return specs
}

// Len returns the number of registered countries.
func (r *Registry) Len() int {
	return len(r.entries)
}
