// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"

	"github.com/reviewboard/rbinstall/internal/console"
	"github.com/reviewboard/rbinstall/internal/domain"
)

const (
	stepPrefix   = "▸ "
	finishPrefix = "✅ "

	minBarWidth = 10
	maxBarWidth = 40

	// Room for the prefix, the percentage, and the elapsed time.
	barOverhead = 16
)

// stepProgress tracks installation progress across the planned steps.
//
// Steps stream their command output straight to the terminal, so a
// live progress display would fight with them for the cursor. Instead
// each step prints one static line showing the position in the plan,
// and the bar lines stay in the scrollback as a record of the run.
type stepProgress struct {
	console   *console.Console
	bar       progress.Model
	total     int
	completed int
	nameWidth int
	start     time.Time
}

func newStepProgress(terminal *console.Console,
	steps []*domain.InstallStep,
) *stepProgress {
	nameWidth := 0

	for _, step := range steps {
		if width := runewidth.StringWidth(step.Name); width > nameWidth {
			nameWidth = width
		}
	}

	bar := progress.New(progress.WithDefaultGradient())

	barWidth := terminal.Width() - nameWidth - barOverhead
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	} else if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}

	bar.Width = barWidth

	return &stepProgress{
		console:   terminal,
		bar:       bar,
		total:     len(steps),
		nameWidth: nameWidth,
		start:     time.Now(),
	}
}

// StartStep prints the progress line for a step about to run.
func (p *stepProgress) StartStep(name string) {
	p.printLine(stepPrefix, name)
}

// StepDone records a finished step.
func (p *stepProgress) StepDone() {
	p.completed++
}

// Finish prints the completed progress line.
func (p *stepProgress) Finish() {
	p.printLine(finishPrefix, "Installation is complete!")
}

func (p *stepProgress) printLine(prefix, name string) {
	if !p.console.Interactive() {
		p.console.Print(prefix + name)

		return
	}

	ratio := 1.0
	if p.total > 0 {
		ratio = float64(p.completed) / float64(p.total)
	}

	elapsed := time.Since(p.start).Round(time.Second)

	p.console.Print(prefix + runewidth.FillRight(name, p.nameWidth) + " " +
		p.bar.ViewAs(ratio) + " " + elapsed.String())
}
