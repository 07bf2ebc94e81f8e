// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"time"
)

// ThemeStatus describes the persisted theme preference.
type ThemeStatus struct {
	Theme       string     `json:"theme" yaml:"theme"`
	Appearance  string     `json:"appearance" yaml:"appearance"`
	Default     string     `json:"default" yaml:"default"`
	StorageKey  string     `json:"storage_key" yaml:"storage_key"`
	StoragePath string     `json:"storage_path,omitempty" yaml:"storage_path,omitempty"`
	Stored      bool       `json:"stored" yaml:"stored"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ThemeList lists the valid themes and marks the active one.
type ThemeList struct {
	Themes  []string `json:"themes" yaml:"themes"`
	Current string   `json:"current" yaml:"current"`
}

// Route is one entry of the route table.
type Route struct {
	Path  string `json:"path" yaml:"path"`
	Title string `json:"title" yaml:"title"`
}

// Formatter formats CLI results.
type Formatter interface {
	FormatTheme(w io.Writer, s ThemeStatus) error
	FormatThemes(w io.Writer, l ThemeList) error
	FormatRoutes(w io.Writer, routes []Route) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// Formats lists the supported format names.
var Formats = []FormatType{FormatPlain, FormatJSON, FormatYAML}

// ParseFormat validates a --format value.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (use plain, json or yaml)", s)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter()
	}
}
