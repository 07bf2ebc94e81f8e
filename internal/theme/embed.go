package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EmbeddedPalettes contains the bundled palette definitions.
//
//go:embed palettes/*.toml
var EmbeddedPalettes embed.FS

// Colors holds the named colours of a palette.
type Colors struct {
	Background       string `toml:"background"`
	Foreground       string `toml:"foreground"`
	Primary          string `toml:"primary"`
	Accent           string `toml:"accent"`
	Muted            string `toml:"muted"`
	Border           string `toml:"border"`
	Success          string `toml:"success"`
	Warning          string `toml:"warning"`
	Danger           string `toml:"danger"`
	HeaderBackground string `toml:"header_background"`
	HeaderForeground string `toml:"header_foreground"`
}

// Palette is a decoded palette file.
type Palette struct {
	Name       string     `toml:"name"`
	Appearance Appearance `toml:"appearance"`
	Colors     Colors     `toml:"colors"`
}

// ParsePalette decodes a TOML palette definition.
func ParsePalette(data []byte) (Palette, error) {
	var p Palette
	if err := toml.Unmarshal(data, &p); err != nil {
		return Palette{}, err
	}
	if p.Appearance != AppearanceLight && p.Appearance != AppearanceDark {
		return Palette{}, fmt.Errorf("palette %q: unknown appearance %q", p.Name, p.Appearance)
	}
	if p.Colors.Background == "" || p.Colors.Foreground == "" {
		return Palette{}, fmt.Errorf("palette %q: background and foreground are required", p.Name)
	}
	return p, nil
}

// GetEmbeddedPalette retrieves a bundled palette by name.
func GetEmbeddedPalette(name string) (Palette, bool) {
	data, err := EmbeddedPalettes.ReadFile("palettes/" + name + ".toml")
	if err != nil {
		return Palette{}, false
	}
	p, err := ParsePalette(data)
	if err != nil {
		return Palette{}, false
	}
	return p, true
}

// ListEmbeddedPalettes returns the names of all bundled palettes.
func ListEmbeddedPalettes() []string {
	entries, err := fs.ReadDir(EmbeddedPalettes, "palettes")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".toml" {
			names = append(names, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	return names
}

// PaletteFor returns the bundled palette for an appearance.
// The palettes are compiled in, so a missing one is a build defect.
func PaletteFor(a Appearance) Palette {
	p, ok := GetEmbeddedPalette(string(a))
	if !ok {
		panic(fmt.Sprintf("theme: no embedded palette for appearance %q", a))
	}
	return p
}
