package theme

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedPalette(t *testing.T) {
	tests := []struct {
		name       string
		appearance Appearance
	}{
		{"light", AppearanceLight},
		{"dark", AppearanceDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, found := GetEmbeddedPalette(tt.name)
			require.True(t, found, "%s palette should be found", tt.name)
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, tt.appearance, p.Appearance)
			assert.NotEmpty(t, p.Colors.Background)
			assert.NotEmpty(t, p.Colors.Foreground)
			assert.NotEmpty(t, p.Colors.Primary)
			assert.NotEmpty(t, p.Colors.Danger)
		})
	}
}

func TestGetEmbeddedPalette_NotFound(t *testing.T) {
	_, found := GetEmbeddedPalette("nonexistent")
	assert.False(t, found)
}

func TestListEmbeddedPalettes(t *testing.T) {
	names := ListEmbeddedPalettes()
	assert.ElementsMatch(t, []string{"light", "dark"}, names)
}

func TestPalettes_DifferByAppearance(t *testing.T) {
	light := PaletteFor(AppearanceLight)
	dark := PaletteFor(AppearanceDark)
	assert.NotEqual(t, light.Colors.Background, dark.Colors.Background)
}

func TestParsePalette(t *testing.T) {
	valid := `
name = "custom"
appearance = "dark"

[colors]
background = "#000000"
foreground = "#FFFFFF"
`
	p, err := ParsePalette([]byte(valid))
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, "#000000", p.Colors.Background)

	_, err = ParsePalette([]byte(`name = "x"
appearance = "sepia"
[colors]
background = "#000"
foreground = "#fff"
`))
	assert.Error(t, err)

	_, err = ParsePalette([]byte(`name = "x"
appearance = "light"
`))
	assert.Error(t, err)

	_, err = ParsePalette([]byte(`this is not toml [`))
	assert.Error(t, err)
}

func TestNewStyles(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	s := StylesFor(r, AppearanceLight)

	assert.Equal(t, AppearanceLight, s.Appearance)
	assert.Equal(t, "light", s.Palette.Name)
	assert.Equal(t, lipgloss.Color(s.Palette.Colors.Background), s.Root.GetBackground())
	assert.True(t, s.Heading.GetBold())
}
