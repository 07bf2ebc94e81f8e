package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats results as aligned plain text.
type PlainFormatter struct {
	now func() time.Time
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{now: time.Now}
}

// FormatTheme writes the theme status, one field per line.
func (f *PlainFormatter) FormatTheme(w io.Writer, s ThemeStatus) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("theme:      %s\n", s.Theme))
	sb.WriteString(fmt.Sprintf("appearance: %s\n", s.Appearance))
	sb.WriteString(fmt.Sprintf("default:    %s\n", s.Default))

	stored := "not saved, using default"
	if s.Stored {
		stored = "saved"
		if s.UpdatedAt != nil {
			stored += " " + humanize.RelTime(*s.UpdatedAt, f.now(), "ago", "from now")
		}
	}
	sb.WriteString(fmt.Sprintf("storage:    %s (%s)\n", s.StorageKey, stored))

	if s.StoragePath != "" {
		sb.WriteString(fmt.Sprintf("file:       %s\n", s.StoragePath))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatThemes writes one theme per line, marking the current one.
func (f *PlainFormatter) FormatThemes(w io.Writer, l ThemeList) error {
	for _, t := range l.Themes {
		marker := "  "
		if t == l.Current {
			marker = "* "
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", marker, t); err != nil {
			return err
		}
	}
	return nil
}

// FormatRoutes writes the route table with paths aligned.
func (f *PlainFormatter) FormatRoutes(w io.Writer, routes []Route) error {
	width := 0
	for _, r := range routes {
		if len(r.Path) > width {
			width = len(r.Path)
		}
	}
	for _, r := range routes {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, r.Path, r.Title); err != nil {
			return err
		}
	}
	return nil
}
