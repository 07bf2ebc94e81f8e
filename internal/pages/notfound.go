package pages

import (
	"fmt"
	"strings"
)

// NotFound is shown for any path without a route.
type NotFound struct {
	HomePath string
}

// NewNotFound creates the fallback page.
func NewNotFound() *NotFound {
	return &NotFound{HomePath: "/"}
}

// Title implements Page.
func (n *NotFound) Title() string { return "Not Found" }

// View implements Page.
func (n *NotFound) View(ctx Context) string {
	s := ctx.Styles
	var b strings.Builder

	b.WriteString(s.StatusErr.Bold(true).Render("404"))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render(fmt.Sprintf("Nothing lives at %q.", ctx.Path)))
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("Press "))
	b.WriteString(s.Key.Render(":"))
	b.WriteString(s.Muted.Render(fmt.Sprintf(" and enter %s to go home.", n.HomePath)))
	b.WriteString("\n")

	return b.String()
}
