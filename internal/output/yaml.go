package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats results as YAML documents.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatTheme writes the theme status as a YAML mapping.
func (f *YAMLFormatter) FormatTheme(w io.Writer, s ThemeStatus) error {
	return f.encode(w, s)
}

// FormatThemes writes the theme list as a YAML mapping.
func (f *YAMLFormatter) FormatThemes(w io.Writer, l ThemeList) error {
	return f.encode(w, l)
}

// FormatRoutes writes the route table as a YAML sequence.
func (f *YAMLFormatter) FormatRoutes(w io.Writer, routes []Route) error {
	if routes == nil {
		routes = []Route{}
	}
	return f.encode(w, routes)
}
