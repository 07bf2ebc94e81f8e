package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is a user's colour theme preference.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Themes lists every valid theme in cycle order.
var Themes = []Theme{Light, Dark, System}

// ErrInvalidTheme is matched by every InvalidThemeError.
var ErrInvalidTheme = errors.New("invalid theme")

// InvalidThemeError is returned when a value outside Themes is used.
type InvalidThemeError struct {
	Value string
}

func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q: must be one of light, dark, system", e.Value)
}

func (e *InvalidThemeError) Unwrap() error {
	return ErrInvalidTheme
}

// Valid reports whether t is one of Themes.
func (t Theme) Valid() bool {
	switch t {
	case Light, Dark, System:
		return true
	default:
		return false
	}
}

func (t Theme) String() string {
	return string(t)
}

// Next returns the theme after t in cycle order.
// An invalid theme cycles to Light.
func (t Theme) Next() Theme {
	for i, candidate := range Themes {
		if candidate == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Light
}

// ParseTheme parses user input such as " Dark ". Stored values are not
// parsed with this; they must match exactly.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &InvalidThemeError{Value: s}
	}
	return t, nil
}

// Appearance is the concrete look a Theme resolves to.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// IsDark reports whether a is the dark appearance.
func (a Appearance) IsDark() bool {
	return a == AppearanceDark
}

func (a Appearance) String() string {
	return string(a)
}
