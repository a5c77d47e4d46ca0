package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/sleuth-io/razordiag/internal/ui/theme"
)

const defaultWidth = 80

// Output provides styled terminal output.
// Status messages go to out; errors and warnings always go to err.
type Output struct {
	out    io.Writer
	err    io.Writer
	theme  theme.Theme
	silent bool
	noTTY  bool
	width  int
}

// NewOutput creates a new styled output instance.
func NewOutput(out, err io.Writer) *Output {
	return &Output{
		out:   out,
		err:   err,
		theme: theme.Current(),
		noTTY: !IsTTY(out) || NoColor(),
		width: terminalWidth(out, defaultWidth),
	}
}

// Width returns the terminal width.
func (o *Output) Width() int {
	return o.width
}

// Wrap wraps text to fit the terminal width.
func (o *Output) Wrap(text string) string {
	if o.width <= 0 {
		return text
	}
	return wordwrap.String(text, o.width)
}

// SetSilent enables or disables silent mode (suppresses out).
func (o *Output) SetSilent(silent bool) {
	o.silent = silent
}

// IsSilent returns whether silent mode is enabled.
func (o *Output) IsSilent() bool {
	return o.silent
}

func (o *Output) render(style lipgloss.Style, text string) string {
	if o.noTTY {
		return text
	}
	return style.Render(text)
}

// Success prints a success message with checkmark.
func (o *Output) Success(msg string) {
	if o.silent {
		return
	}
	fmt.Fprintln(o.out, o.render(o.theme.Styles().Success, o.theme.Symbols().Success+" "+o.Wrap(msg)))
}

// Error prints an error message with X mark to err.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.err, o.render(o.theme.Styles().Error, o.theme.Symbols().Error+" "+o.Wrap(msg)))
}

// Warning prints a warning message to err.
func (o *Output) Warning(msg string) {
	fmt.Fprintln(o.err, o.render(o.theme.Styles().Warning, o.theme.Symbols().Warning+" "+o.Wrap(msg)))
}

// Info prints an info message with arrow.
func (o *Output) Info(msg string) {
	if o.silent {
		return
	}
	fmt.Fprintln(o.out, o.render(o.theme.Styles().Info, o.theme.Symbols().Info+" "+msg))
}

// Header prints a bold header.
func (o *Output) Header(text string) {
	if o.silent {
		return
	}
	fmt.Fprintln(o.out, o.render(o.theme.Styles().Header, text))
}

// Muted prints muted/dim text.
func (o *Output) Muted(msg string) {
	if o.silent {
		return
	}
	fmt.Fprintln(o.out, o.render(o.theme.Styles().Muted, msg))
}

// KeyValue prints a key-value pair.
func (o *Output) KeyValue(key, value string) {
	if o.silent {
		return
	}
	styles := o.theme.Styles()
	if o.noTTY {
		fmt.Fprintf(o.out, "%s: %s\n", key, value)
		return
	}
	fmt.Fprintln(o.out, styles.Key.Render(key+":")+" "+styles.Value.Render(value))
}

// ListItem prints a single list item with custom prefix.
func (o *Output) ListItem(prefix, item string) {
	if o.silent {
		return
	}
	fmt.Fprintf(o.out, "  %s %s\n", o.render(o.theme.Styles().Emphasis, prefix), item)
}

// Newline prints an empty line.
func (o *Output) Newline() {
	if o.silent {
		return
	}
	fmt.Fprintln(o.out)
}

// SuccessText returns success-styled text.
func (o *Output) SuccessText(text string) string {
	return o.render(o.theme.Styles().Success, text)
}

// ErrorText returns error-styled text.
func (o *Output) ErrorText(text string) string {
	return o.render(o.theme.Styles().Error, text)
}

// Symbols returns the symbols of the current theme.
func (o *Output) Symbols() theme.Symbols {
	return o.theme.Symbols()
}
