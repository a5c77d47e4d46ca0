// Package theme holds the colors, styles and symbols used for terminal output.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of colors, styles and symbols.
type Theme interface {
	Name() string
	Palette() ColorPalette
	Styles() Styles
	Symbols() Symbols
}

// ColorPalette defines adaptive colors for light and dark terminals.
type ColorPalette struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Text         lipgloss.AdaptiveColor
	TextMuted    lipgloss.AdaptiveColor
	TextEmphasis lipgloss.AdaptiveColor
}

// Styles are the lipgloss styles built from a palette.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Header   lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Emphasis lipgloss.Style

	Key   lipgloss.Style
	Value lipgloss.Style

	Spinner lipgloss.Style
}

// Symbols are the glyphs prefixed to messages.
type Symbols struct {
	Success string
	Error   string
	Warning string
	Info    string
	Bullet  string
}

var (
	current Theme
	mu      sync.RWMutex
)

// Current returns the active theme.
func Current() Theme {
	mu.RLock()
	t := current
	mu.RUnlock()
	if t != nil {
		return t
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = NewRazorTheme()
	}
	return current
}

// Set replaces the active theme.
func Set(t Theme) {
	mu.Lock()
	current = t
	mu.Unlock()
}
