// Package translit converts Sanskrit text between SLP1, the canonical
// encoding every stored dataset uses, and thirteen presentation schemes.
package translit

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme names a supported transliteration scheme.
type Scheme string

const (
	SLP1       Scheme = "slp1"
	Devanagari Scheme = "devanagari"
	IAST       Scheme = "iast"
	HK         Scheme = "hk"
	ITRANS     Scheme = "itrans"
	Velthuis   Scheme = "velthuis"
	WX         Scheme = "wx"
	Bengali    Scheme = "bengali"
	Gujarati   Scheme = "gujarati"
	Gurmukhi   Scheme = "gurmukhi"
	Kannada    Scheme = "kannada"
	Malayalam  Scheme = "malayalam"
	Oriya      Scheme = "oriya"
	Telugu     Scheme = "telugu"
)

// Canonical is the internal pivot encoding.
const Canonical = SLP1

var schemes = []Scheme{
	SLP1, Devanagari, IAST, HK, ITRANS, Velthuis, WX,
	Bengali, Gujarati, Gurmukhi, Kannada, Malayalam, Oriya, Telugu,
}

// ErrInvalidScript is returned for scheme names outside the supported set.
var ErrInvalidScript = errors.New("invalid script")

// InvalidScriptError carries the rejected scheme name.
type InvalidScriptError struct {
	Name string
}

func (e *InvalidScriptError) Error() string {
	return fmt.Sprintf("invalid script %q (want one of %s)", e.Name, strings.Join(Names(), ", "))
}

func (e *InvalidScriptError) Unwrap() error { return ErrInvalidScript }

// Schemes returns every supported scheme, canonical first.
func Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

// Names returns the supported scheme names in Schemes order.
func Names() []string {
	out := make([]string, len(schemes))
	for i, s := range schemes {
		out[i] = string(s)
	}
	return out
}

// Valid reports whether s is a supported scheme.
func (s Scheme) Valid() bool {
	for _, v := range schemes {
		if v == s {
			return true
		}
	}
	return false
}

// ParseScheme validates name (case-insensitive, surrounding space ignored).
func ParseScheme(name string) (Scheme, error) {
	s := Scheme(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", &InvalidScriptError{Name: name}
	}
	return s, nil
}

func (s Scheme) brahmic() bool {
	_, ok := brahmicBlocks[s]
	return ok
}
