package layout

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/appshell/internal/theme"
)

func testStyles() theme.Styles {
	return theme.StylesFor(lipgloss.NewRenderer(io.Discard), theme.AppearanceLight)
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 18, ContentHeight(20))
	assert.Equal(t, 0, ContentHeight(1))
	assert.Equal(t, 0, ContentHeight(0))
}

func TestRender_Chrome(t *testing.T) {
	out := Render(testStyles(), Frame{
		AppName:   "appshell",
		PageTitle: "About",
		Location:  "/about",
		Theme:     theme.System,
		Content:   "hello world",
		Keybinds:  []Keybind{{Key: "q", Desc: "quit", Priority: 1}},
		Width:     60,
		Height:    10,
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, lines[0], "appshell")
	assert.Contains(t, lines[0], "About")
	assert.Contains(t, lines[0], "/about")
	assert.Contains(t, lines[0], "system · light")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, lines[9], "q quit")

	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 60)
	}
}

func TestRender_FooterPrecedence(t *testing.T) {
	s := testStyles()
	base := Frame{
		AppName:  "appshell",
		Location: "/",
		Theme:    theme.Dark,
		Keybinds: []Keybind{{Key: "q", Desc: "quit", Priority: 1}},
		Width:    40,
		Height:   5,
	}

	withStatus := base
	withStatus.Status = "could not save theme"
	withStatus.StatusErr = true
	out := Render(s, withStatus)
	assert.Contains(t, out, "could not save theme")
	assert.NotContains(t, out, "q quit")

	withAddress := withStatus
	withAddress.Address = "go to: /settings"
	out = Render(s, withAddress)
	assert.Contains(t, out, "go to: /settings")
	assert.NotContains(t, out, "could not save theme")
}

func TestRender_Unsized(t *testing.T) {
	out := Render(testStyles(), Frame{AppName: "appshell", Location: "/", Theme: theme.Dark, Content: "body"})
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "appshell")
}

func TestKeybindBar(t *testing.T) {
	s := testStyles()
	binds := []Keybind{
		{Key: "?", Desc: "help", Priority: 3},
		{Key: "q", Desc: "quit", Priority: 1},
		{Key: "t", Desc: "theme", Priority: 2},
	}

	assert.Equal(t, "q quit  t theme  ? help", KeybindBar(s, 0, binds))
	assert.Equal(t, "q quit  t theme", KeybindBar(s, 16, binds))
	assert.Equal(t, "q quit", KeybindBar(s, 6, binds))
	assert.Equal(t, "", KeybindBar(s, 3, binds))

	// Input order is untouched
	assert.Equal(t, "?", binds[0].Key)
}
