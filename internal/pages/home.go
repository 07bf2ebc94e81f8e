package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/appshell/internal/theme"
)

// ThemeChangedMsg is returned by Home after it sets a theme.
type ThemeChangedMsg struct {
	Theme theme.Theme
}

// Home is the landing page. It shows the active theme and lets the user
// pick one directly.
type Home struct {
	store *theme.Store

	light  key.Binding
	dark   key.Binding
	system key.Binding
}

// NewHome creates the home page for store.
func NewHome(store *theme.Store) *Home {
	return &Home{
		store: store,
		light: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "light"),
		),
		dark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark"),
		),
		system: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "system"),
		),
	}
}

// Title implements Page.
func (h *Home) Title() string { return "Home" }

// ShortHelp lists the page's own bindings.
func (h *Home) ShortHelp() []key.Binding {
	return []key.Binding{h.light, h.dark, h.system}
}

// HandleKey implements KeyHandler.
func (h *Home) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	var t theme.Theme
	switch {
	case key.Matches(msg, h.light):
		t = theme.Light
	case key.Matches(msg, h.dark):
		t = theme.Dark
	case key.Matches(msg, h.system):
		t = theme.System
	default:
		return nil, false
	}

	if err := h.store.Set(t); err != nil {
		return nil, true
	}
	return func() tea.Msg { return ThemeChangedMsg{Theme: t} }, true
}

// View implements Page.
func (h *Home) View(ctx Context) string {
	s := ctx.Styles
	var b strings.Builder

	b.WriteString(s.Heading.Render("Welcome"))
	b.WriteString("\n\n")

	current := h.store.Get()
	b.WriteString(s.Text.Render(fmt.Sprintf("Theme:      %s", current)))
	b.WriteString("\n")
	b.WriteString(s.Text.Render(fmt.Sprintf("Appearance: %s", s.Appearance)))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("Stored under %q", h.store.StorageKey())))
	b.WriteString("\n\n")

	b.WriteString(s.Heading.Render("Choose a theme"))
	b.WriteString("\n")
	for _, bind := range []key.Binding{h.light, h.dark, h.system} {
		marker := "  "
		if string(current) == bind.Help().Desc {
			marker = "> "
		}
		b.WriteString(s.Text.Render(marker))
		b.WriteString(s.Key.Render(bind.Help().Key))
		b.WriteString(s.Text.Render("  " + bind.Help().Desc))
		b.WriteString("\n")
	}

	return b.String()
}
