package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles for one appearance, bound to a renderer.
type Styles struct {
	Appearance Appearance
	Palette    Palette

	Root      lipgloss.Style
	Header    lipgloss.Style
	Title     lipgloss.Style
	Path      lipgloss.Style
	Badge     lipgloss.Style
	Content   lipgloss.Style
	Heading   lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Key       lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Address   lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles builds styles for palette p. A nil renderer uses the default
// lipgloss renderer (the local terminal).
func NewStyles(r *lipgloss.Renderer, p Palette) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	c := p.Colors
	bg := lipgloss.Color(c.Background)
	fg := lipgloss.Color(c.Foreground)

	base := r.NewStyle().Background(bg).Foreground(fg)

	return Styles{
		Appearance: p.Appearance,
		Palette:    p,

		Root: base,
		Header: r.NewStyle().
			Background(lipgloss.Color(c.HeaderBackground)).
			Foreground(lipgloss.Color(c.HeaderForeground)).
			Padding(0, 1),
		Title: r.NewStyle().
			Background(lipgloss.Color(c.HeaderBackground)).
			Foreground(lipgloss.Color(c.Primary)).
			Bold(true),
		Path: r.NewStyle().
			Background(lipgloss.Color(c.HeaderBackground)).
			Foreground(lipgloss.Color(c.Accent)),
		Badge: r.NewStyle().
			Background(lipgloss.Color(c.Primary)).
			Foreground(lipgloss.Color(c.Background)).
			Padding(0, 1),
		Content:   base.Padding(1, 2),
		Heading:   base.Bold(true).Foreground(lipgloss.Color(c.Primary)),
		Text:      base,
		Muted:     base.Foreground(lipgloss.Color(c.Muted)),
		Key:       base.Foreground(lipgloss.Color(c.Success)),
		Status:    base.Foreground(lipgloss.Color(c.Muted)),
		StatusErr: base.Foreground(lipgloss.Color(c.Danger)),
		Address:   base.Foreground(lipgloss.Color(c.Accent)),
		Border:    base.Foreground(lipgloss.Color(c.Border)),
	}
}

// StylesFor is a shorthand for NewStyles(r, PaletteFor(a)).
func StylesFor(r *lipgloss.Renderer, a Appearance) Styles {
	return NewStyles(r, PaletteFor(a))
}
