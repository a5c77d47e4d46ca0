package theme

import "github.com/charmbracelet/lipgloss"

// razorTheme uses the violet accents of the .NET tooling.
type razorTheme struct {
	palette ColorPalette
	styles  Styles
	symbols Symbols
}

// NewRazorTheme creates the default theme.
func NewRazorTheme() Theme {
	palette := ColorPalette{
		Primary:   lipgloss.AdaptiveColor{Light: "#6d28d9", Dark: "#a78bfa"}, // Violet
		Secondary: lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}, // Blue

		Success: lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"},
		Error:   lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#ef4444"},
		Warning: lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"},
		Info:    lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"},

		Text:         lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f9fafb"},
		TextMuted:    lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"},
		TextEmphasis: lipgloss.AdaptiveColor{Light: "#111827", Dark: "#ffffff"},
	}

	t := &razorTheme{
		palette: palette,
		symbols: Symbols{
			Success: "✓", // checkmark
			Error:   "✗", // X mark
			Warning: "!",
			Info:    "→", // arrow
			Bullet:  "•",
		},
	}

	t.styles = Styles{
		Success: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(palette.Warning),
		Info: lipgloss.NewStyle().
			Foreground(palette.Info),

		Header: lipgloss.NewStyle().
			Foreground(palette.TextEmphasis).
			Bold(true),
		Bold: lipgloss.NewStyle().
			Foreground(palette.TextEmphasis).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		Emphasis: lipgloss.NewStyle().
			Foreground(palette.Primary),

		Key: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		Value: lipgloss.NewStyle().
			Foreground(palette.Text),

		Spinner: lipgloss.NewStyle().
			Foreground(palette.Primary),
	}

	return t
}

func (t *razorTheme) Name() string {
	return "razor"
}

func (t *razorTheme) Palette() ColorPalette {
	return t.palette
}

func (t *razorTheme) Styles() Styles {
	return t.styles
}

func (t *razorTheme) Symbols() Symbols {
	return t.symbols
}
