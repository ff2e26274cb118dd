// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package tui

import (
	"github.com/charmbracelet/huh"
)

// confirm asks a yes/no question. defaultYes selects the answer offered
// when the user just presses Enter, and unattendedYes is the answer
// assumed when the console cannot prompt at all.
func (w *Wizard) confirm(question string, defaultYes, unattendedYes bool) (bool, error) {
	if !w.console.Interactive() {
		w.console.Printf("%s [y/n] (%s)", question, yesNo(unattendedYes))

		return unattendedYes, nil
	}

	value := defaultYes

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return value, nil
}

// promptString asks for a text value, offering defaultValue as the
// pre-filled answer. A non-interactive console takes the default.
func (w *Wizard) promptString(question, defaultValue string) (string, error) {
	if !w.console.Interactive() {
		w.console.Printf("%s (%s)", question, defaultValue)

		return defaultValue, nil
	}

	value := defaultValue

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(question).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}

	return value, nil
}

func yesNo(value bool) string {
	if value {
		return "y"
	}

	return "n"
}
