package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats results as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatTheme writes the theme status as a JSON object.
func (f *JSONFormatter) FormatTheme(w io.Writer, s ThemeStatus) error {
	return f.encode(w, s)
}

// FormatThemes writes the theme list as a JSON object.
func (f *JSONFormatter) FormatThemes(w io.Writer, l ThemeList) error {
	return f.encode(w, l)
}

// FormatRoutes writes the route table as a JSON array.
func (f *JSONFormatter) FormatRoutes(w io.Writer, routes []Route) error {
	if routes == nil {
		routes = []Route{}
	}
	return f.encode(w, routes)
}
