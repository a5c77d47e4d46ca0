package components

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sleuth-io/razordiag/internal/ui"
	"github.com/sleuth-io/razordiag/internal/ui/theme"
)

// ErrCancelled is returned when the user interrupts the spinner.
var ErrCancelled = errors.New("cancelled")

// spinnerDoneMsg signals that the spinner task is complete.
type spinnerDoneMsg struct {
	err error
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
	theme   theme.Theme
}

func newSpinnerModel(message string) spinnerModel {
	th := theme.Current()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = th.Styles().Spinner

	return spinnerModel{
		spinner: s,
		message: message,
		theme:   th,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.theme.Styles().Muted.Render(m.message)
}

type outcome[T any] struct {
	value T
	err   error
}

// RunWithSpinner runs fn while showing a spinner on out. Interrupting the
// spinner cancels the context passed to fn and returns ErrCancelled without
// waiting for fn. When out is not a terminal fn simply runs and nothing is drawn.
func RunWithSpinner[T any](ctx context.Context, message string, out io.Writer, fn func(context.Context) (T, error)) (T, error) {
	if !ui.IsTTY(out) || ui.NoColor() {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan outcome[T], 1)
	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(out))
	go func() {
		v, err := fn(ctx)
		done <- outcome[T]{value: v, err: err}
		p.Send(spinnerDoneMsg{err: err})
	}()

	var zero T
	final, err := p.Run()
	if err != nil {
		return zero, fmt.Errorf("spinner failed: %w", err)
	}
	if m, ok := final.(spinnerModel); ok && errors.Is(m.err, ErrCancelled) {
		return zero, ErrCancelled
	}
	res := <-done
	return res.value, res.err
}
