// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package console

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the styles for all console output elements.
type Styles struct {
	// CommandPrompt styles the leading "$" of an echoed command.
	CommandPrompt lipgloss.Style

	// CommandLine styles the command text after the prompt.
	CommandLine lipgloss.Style

	// CommandOutput styles streamed output from running commands.
	CommandOutput lipgloss.Style

	// HeaderBand styles the text line of a section header.
	HeaderBand lipgloss.Style

	// HeaderRule styles the rule lines around a section header.
	HeaderRule lipgloss.Style

	// NoteLabel styles the "NOTE:" marker of an admonition.
	NoteLabel lipgloss.Style

	// Note styles the body of an admonition.
	Note lipgloss.Style

	// Key styles the key column of key/value tables and term lists.
	Key lipgloss.Style

	// Item styles the numbers of an ordered list.
	Item lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles returns the styles for a color terminal, tuned for a dark
// or light background.
func NewStyles(darkBackground bool) *Styles {
	red := lipgloss.Color("1")
	green := lipgloss.Color("2")
	yellow := lipgloss.Color("3")
	blue := lipgloss.Color("4")
	cyan := lipgloss.Color("6")

	styles := &Styles{
		CommandPrompt: lipgloss.NewStyle().Bold(true).Foreground(red),
		CommandOutput: lipgloss.NewStyle().Faint(true),
		HeaderRule:    lipgloss.NewStyle().Foreground(green),
		Success:       lipgloss.NewStyle().Foreground(green),
		Warning:       lipgloss.NewStyle().Foreground(yellow),
		Error:         lipgloss.NewStyle().Foreground(red),
		Info:          lipgloss.NewStyle().Faint(true).Foreground(cyan),
		Key:           lipgloss.NewStyle().Bold(true),
	}

	if darkBackground {
		styles.CommandLine = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		styles.HeaderBand = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(green).
			Bold(true)
		styles.NoteLabel = lipgloss.NewStyle().Bold(true).Foreground(yellow)
		styles.Note = lipgloss.NewStyle().Foreground(yellow)
		styles.Item = lipgloss.NewStyle().Bold(true).Foreground(blue)
	} else {
		styles.CommandLine = lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
		styles.HeaderBand = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(green).
			Bold(true)
		styles.NoteLabel = lipgloss.NewStyle().Bold(true).Foreground(red)
		styles.Note = lipgloss.NewStyle().Foreground(red)
		styles.Item = lipgloss.NewStyle().Bold(true).Foreground(blue)
	}

	return styles
}

// NewPlainStyles returns styles with no color or emphasis, for
// terminals without color support or when color is disabled.
func NewPlainStyles() *Styles {
	plain := lipgloss.NewStyle()

	return &Styles{
		CommandPrompt: plain,
		CommandLine:   plain,
		CommandOutput: plain,
		HeaderBand:    plain,
		HeaderRule:    plain,
		NoteLabel:     plain,
		Note:          plain,
		Key:           plain,
		Item:          plain,
		Success:       plain,
		Warning:       plain,
		Error:         plain,
		Info:          plain,
	}
}
