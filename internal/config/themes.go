package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Theme is one color palette for the cockpit. Values are true-color hex.
type Theme struct {
	Name   string `toml:"name"`
	Bg     string `toml:"bg"`
	Panel  string `toml:"panel"`
	Card   string `toml:"card"`
	Text   string `toml:"text"`
	Accent string `toml:"accent"`
}

type themesFile struct {
	Theme []Theme `toml:"theme"`
}

const defaultThemesTOML = `# Cockpit theme definitions
# Add new [[theme]] blocks to define additional palettes.

[[theme]]
name = "DARK"
bg = "#1b1b1b"
panel = "#252525"
card = "#2f2f2f"
text = "#f2f2f2"
accent = "#ff9f1c"

[[theme]]
name = "LIGHT"
bg = "#f2f2f2"
panel = "#ffffff"
card = "#e5e5e5"
text = "#1f1f1f"
accent = "#ff9f1c"

[[theme]]
name = "POSTIT"
bg = "#f5f0c8"
panel = "#fff9da"
card = "#f7ef9d"
text = "#3b2f2f"
accent = "#e67e22"

[[theme]]
name = "PINK"
bg = "#3b0d2b"
panel = "#5e1744"
card = "#7f275e"
text = "#ffe6f2"
accent = "#ff77b4"

[[theme]]
name = "BLUE"
bg = "#0c1b33"
panel = "#12305f"
card = "#1d447f"
text = "#e5f0ff"
accent = "#4da3ff"
`

// themesPath returns the full path to the themes.toml file.
func themesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "cockpit", "themes.toml"), nil
}

// LoadThemes loads palette definitions from the themes file. If the file
// doesn't exist, it is created with the default set.
func LoadThemes() ([]Theme, error) {
	path, err := themesPath()
	if err != nil {
		return DefaultThemes(), err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return DefaultThemes(), fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultThemesTOML), 0o644); wErr != nil {
			return DefaultThemes(), fmt.Errorf("write default themes: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultThemes(), fmt.Errorf("read themes: %w", err)
	}
	themes, parseErr := ParseThemes(data)
	if parseErr != nil {
		return DefaultThemes(), parseErr
	}
	return themes, nil
}

// ParseThemes parses TOML bytes into theme definitions.
func ParseThemes(data []byte) ([]Theme, error) {
	var f themesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse themes.toml: %w", err)
	}
	if len(f.Theme) == 0 {
		return nil, fmt.Errorf("no themes defined")
	}
	for i, t := range f.Theme {
		if t.Name == "" {
			return nil, fmt.Errorf("theme[%d]: name is required", i)
		}
		for field, v := range map[string]string{
			"bg": t.Bg, "panel": t.Panel, "card": t.Card, "text": t.Text, "accent": t.Accent,
		} {
			if !validHex(v) {
				return nil, fmt.Errorf("theme %q: %s must be a #rrggbb color", t.Name, field)
			}
		}
	}
	return f.Theme, nil
}

// DefaultThemes returns the built-in palettes.
func DefaultThemes() []Theme {
	themes, err := ParseThemes([]byte(defaultThemesTOML))
	if err != nil {
		panic(err) // the embedded default must parse
	}
	return themes
}

// FindTheme looks a theme up by name (case-insensitive); falls back to the
// first theme in the set.
func FindTheme(themes []Theme, name string) Theme {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themes[0]
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
