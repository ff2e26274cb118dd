// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/reviewboard/rbinstall/internal/console"
)

// statusDoneMsg ends the status spinner, carrying the error from the
// work it was covering.
type statusDoneMsg struct {
	err error
}

// statusModel shows a spinner and a status line while background work
// runs. The view collapses to nothing once the work finishes so the
// status line disappears like it was never printed.
type statusModel struct {
	spinner spinner.Model
	text    string
	result  *statusDoneMsg
	aborted bool
}

func newStatusModel(text string, styles *console.Styles) statusModel {
	statusSpinner := spinner.New()
	statusSpinner.Spinner = spinner.Dot
	statusSpinner.Style = styles.Info

	return statusModel{
		spinner: statusSpinner,
		text:    text,
	}
}

// Init starts the spinner ticking.
func (m statusModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles spinner ticks, completion, and cancellation.
func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusDoneMsg:
		m.result = &msg

		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true

			return m, tea.Quit
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View renders the status line.
func (m statusModel) View() string {
	if m.result != nil || m.aborted {
		return ""
	}

	return m.spinner.View() + m.text
}

// runWithStatus runs work while a spinner and status text occupy the
// terminal, clearing the status line once the work completes. On a
// non-interactive console the text is printed instead. Cancelling with
// Control-C reports huh.ErrUserAborted so callers treat it like any
// other dismissed prompt.
func runWithStatus(ctx context.Context, terminal *console.Console,
	text string, work func() error,
) error {
	if !terminal.Interactive() {
		terminal.Print(text)

		return work()
	}

	program := tea.NewProgram(newStatusModel(text, terminal.Styles()),
		tea.WithContext(ctx))

	go func() {
		program.Send(statusDoneMsg{err: work()})
	}()

	model, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return huh.ErrUserAborted
		}

		return fmt.Errorf("failed to show status: %w", err)
	}

	final, ok := model.(statusModel)
	if !ok || final.aborted || final.result == nil {
		return huh.ErrUserAborted
	}

	return final.result.err
}
