// Package pages provides the screens the router can show inside the shell
// layout.
package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/appshell/internal/theme"
)

// Context is what a page gets to render itself.
type Context struct {
	Path   string // Current location path, including for NotFound
	Width  int    // Content width in cells
	Height int
	Theme  theme.Theme
	Styles theme.Styles
}

// Page is a routable screen.
type Page interface {
	Title() string
	View(ctx Context) string
}

// KeyHandler is implemented by pages that react to keys. handled reports
// whether the key was consumed; unhandled keys scroll the content.
type KeyHandler interface {
	HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool)
}

// Func adapts a render function to Page.
type Func struct {
	Name   string
	Render func(ctx Context) string
}

// Title implements Page.
func (f Func) Title() string { return f.Name }

// View implements Page.
func (f Func) View(ctx Context) string {
	if f.Render == nil {
		return ""
	}
	return f.Render(ctx)
}
