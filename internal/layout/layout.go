// Package layout renders the shell chrome around the routed page: a header
// with the title, location and theme badge, the content area and a footer
// holding the status line, address bar or keybind bar.
package layout

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/appshell/internal/theme"
)

// Chrome rows taken by the header and footer.
const (
	HeaderHeight = 1
	FooterHeight = 1
)

// Keybind is a single entry in the footer bar.
type Keybind struct {
	Key      string
	Desc     string
	Priority int // lower = more important (kept when space runs out)
}

// Frame is everything needed to draw one screen.
type Frame struct {
	AppName   string
	PageTitle string
	Location  string
	Theme     theme.Theme
	Content   string
	Status    string
	StatusErr bool
	Address   string // Rendered address bar; replaces the footer when set
	Keybinds  []Keybind
	Width     int
	Height    int
}

// ContentHeight returns the rows left for page content in a window of
// the given height.
func ContentHeight(height int) int {
	h := height - HeaderHeight - FooterHeight
	if h < 0 {
		return 0
	}
	return h
}

// Render draws f with styles s. The root style fills the whole window so
// the background follows the active appearance.
func Render(s theme.Styles, f Frame) string {
	header := renderHeader(s, f)
	footer := renderFooter(s, f)

	content := f.Content
	if f.Width > 0 {
		content = s.Root.Width(f.Width).Height(ContentHeight(f.Height)).Render(content)
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
	if f.Width > 0 && f.Height > 0 {
		return s.Root.Width(f.Width).Height(f.Height).MaxHeight(f.Height).Render(frame)
	}
	return frame
}

func renderHeader(s theme.Styles, f Frame) string {
	left := s.Title.Render(f.AppName)
	if f.PageTitle != "" {
		left += s.Header.Render(f.PageTitle)
	}
	left += s.Path.Render(f.Location)

	badge := s.Badge.Render(string(f.Theme) + " · " + string(s.Appearance))

	gap := f.Width - lipgloss.Width(left) - lipgloss.Width(badge) - s.Header.GetHorizontalPadding()
	if gap < 1 {
		gap = 1
	}
	row := left + s.Header.UnsetPadding().Render(strings.Repeat(" ", gap)) + badge

	style := s.Header
	if f.Width > 0 {
		style = style.Width(f.Width).MaxWidth(f.Width)
	}
	return style.Render(row)
}

func renderFooter(s theme.Styles, f Frame) string {
	var line string
	switch {
	case f.Address != "":
		line = f.Address
	case f.Status != "":
		st := s.Status
		if f.StatusErr {
			st = s.StatusErr
		}
		line = st.Render(f.Status)
	default:
		line = KeybindBar(s, f.Width, f.Keybinds)
	}

	if f.Width > 0 {
		return s.Root.Width(f.Width).MaxWidth(f.Width).Render(line)
	}
	return line
}

// KeybindBar builds a keybind bar that fits within width, dropping the
// least important binds first. width <= 0 means unlimited.
func KeybindBar(s theme.Styles, width int, binds []Keybind) string {
	ordered := make([]Keybind, len(binds))
	copy(ordered, binds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	const separator = "  "
	var kept []Keybind
	used := 0
	for _, b := range ordered {
		w := lipgloss.Width(b.Key + " " + b.Desc)
		if len(kept) > 0 {
			w += len(separator)
		}
		if width > 0 && used+w > width {
			break
		}
		used += w
		kept = append(kept, b)
	}

	var parts []string
	for _, b := range kept {
		parts = append(parts, s.Key.Render(b.Key)+s.Muted.Render(" "+b.Desc))
	}
	return strings.Join(parts, s.Muted.Render(separator))
}
