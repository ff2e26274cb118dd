// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package console renders the installer's terminal output: section
// headers, paragraphs, command echoes and streamed command output.
//
// All rendering goes through an explicit writer so tests can capture
// output, and all styling goes through a Styles set so color can be
// disabled wholesale.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const defaultWidth = 80

// Options configures a Console.
type Options struct {
	// Color enables styled output. When false, everything renders as
	// plain text.
	Color bool

	// Interactive reports whether the console may prompt for input.
	Interactive bool

	// Width is the terminal width. Zero means detect, falling back to
	// 80 columns when the output is not a terminal.
	Width int
}

// Console writes styled installer output to a single writer.
type Console struct {
	out         io.Writer
	styles      *Styles
	width       int
	color       bool
	interactive bool
}

// New creates a console writing to out.
func New(out io.Writer, options Options) *Console {
	color := options.Color && colorAllowed()

	styles := NewPlainStyles()
	if color {
		styles = NewStyles(lipgloss.HasDarkBackground())
	}

	width := options.Width
	if width == 0 {
		width = detectWidth(out)
	}

	return &Console{
		out:         out,
		styles:      styles,
		width:       width,
		color:       color,
		interactive: options.Interactive,
	}
}

// colorAllowed honors the NO_COLOR convention and dumb terminals,
// which override a request for styled output.
func colorAllowed() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

func detectWidth(out io.Writer) int {
	if file, ok := out.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}

	return defaultWidth
}

// Interactive reports whether the console may prompt for input.
func (c *Console) Interactive() bool {
	return c.interactive
}

// Width returns the rendering width in columns.
func (c *Console) Width() int {
	return c.width
}

// Styles returns the active style set.
func (c *Console) Styles() *Styles {
	return c.styles
}

// Print writes a line of text.
func (c *Console) Print(text string) {
	fmt.Fprintln(c.out, text)
}

// Printf writes a formatted line of text.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Blank writes an empty line.
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Header writes a banded section header surrounded by rules.
func (c *Console) Header(text string) {
	c.Blank()
	c.Blank()
	c.rule()
	c.Print(c.styles.HeaderBand.Render(" " + text + " "))
	c.rule()
	c.Blank()
}

// FirstHeader writes a section header without the leading blank lines.
func (c *Console) FirstHeader(text string) {
	c.rule()
	c.Print(c.styles.HeaderBand.Render(" " + text + " "))
	c.rule()
	c.Blank()
}

func (c *Console) rule() {
	c.Print(c.styles.HeaderRule.Render(strings.Repeat("─", c.width)))
}

// wrap breaks text at word boundaries to fit the given limit. Text is
// returned as is when the console is too narrow to wrap sensibly.
func (c *Console) wrap(text string, limit int) string {
	if limit < 1 {
		return text
	}

	return wordwrap.String(text, limit)
}

// Paragraphs writes each paragraph separated by a blank line, with a
// trailing blank line. Paragraphs are wrapped to the console width.
func (c *Console) Paragraphs(paragraphs ...string) {
	for i, paragraph := range paragraphs {
		if i > 0 {
			c.Blank()
		}

		c.Print(c.wrap(paragraph, c.width))
	}

	c.Blank()
}

// Note writes a note admonition.
func (c *Console) Note(paragraphs ...string) {
	label := "NOTE:"
	indent := strings.Repeat(" ", runewidth.StringWidth(label)+1)

	c.Blank()

	for i, paragraph := range paragraphs {
		if i > 0 {
			c.Print(indent)
		}

		wrapped := c.wrap(paragraph, c.width-len(indent))

		for j, line := range strings.Split(wrapped, "\n") {
			if i == 0 && j == 0 {
				c.Print(c.styles.NoteLabel.Render(label) + " " +
					c.styles.Note.Render(line))
			} else {
				c.Print(indent + c.styles.Note.Render(line))
			}
		}
	}

	c.Blank()
}

// KeyValues writes a two-column table with right-justified keys.
func (c *Console) KeyValues(rows [][2]string) {
	keyWidth := 0

	for _, row := range rows {
		width := runewidth.StringWidth(row[0]) + 1

		if width > keyWidth {
			keyWidth = width
		}
	}

	for _, row := range rows {
		key := row[0] + ":"
		padding := strings.Repeat(" ", keyWidth-runewidth.StringWidth(key))

		c.Print(padding + c.styles.Key.Render(key) + " " + row[1])
	}
}

// Term is one entry in a term list.
type Term struct {
	Name        string
	Description string
}

// Terms writes a list of terms with indented descriptions.
func (c *Console) Terms(terms []Term) {
	for _, term := range terms {
		c.Print(c.styles.Key.Render(term.Name + ":"))

		wrapped := c.wrap(term.Description, c.width-4)

		for _, line := range strings.Split(wrapped, "\n") {
			c.Print("    " + line)
		}

		c.Blank()
	}
}

// OrderedList writes a numbered list with a trailing blank line.
func (c *Console) OrderedList(items ...string) {
	numberWidth := runewidth.StringWidth(fmt.Sprintf("%d.", len(items)))

	for i, item := range items {
		number := fmt.Sprintf("%d.", i+1)
		padding := strings.Repeat(" ",
			numberWidth-runewidth.StringWidth(number))
		wrapped := c.wrap(item, c.width-numberWidth-1)

		for j, line := range strings.Split(wrapped, "\n") {
			if j == 0 {
				c.Print(padding + c.styles.Item.Render(number) + " " + line)
			} else {
				c.Print(strings.Repeat(" ", numberWidth+1) + line)
			}
		}
	}

	c.Blank()
}

// ShellCommand writes an indented command line for plan previews.
func (c *Console) ShellCommand(cmdline string) {
	c.Print("    " + c.styles.CommandPrompt.Render("$") + " " +
		c.styles.CommandLine.Render(cmdline))
}

// CommandEcho writes the prompt line shown before running a command.
func (c *Console) CommandEcho(cmdline string) {
	c.Print(c.styles.CommandPrompt.Render("$") + " " +
		c.styles.CommandLine.Render(cmdline))
}

// Success writes a success message.
func (c *Console) Success(text string) {
	c.Print(c.styles.Success.Render(text))
}

// Warning writes a warning message.
func (c *Console) Warning(text string) {
	c.Print(c.styles.Warning.Render(text))
}

// Error writes an error message.
func (c *Console) Error(text string) {
	c.Print(c.styles.Error.Render(text))
}

// Markdown renders a markdown snippet at the console width. When color
// is disabled the markup is stripped rather than styled.
func (c *Console) Markdown(text string) {
	style := glamour.WithStandardStyle("notty")
	if c.color {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(c.width),
		glamour.WithEmoji(),
	)
	if err != nil {
		c.Print(c.wrap(text, c.width))

		return
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		c.Print(c.wrap(text, c.width))

		return
	}

	c.Print(strings.Trim(rendered, "\n"))
}

// CommandOutputWriter returns a writer that renders streamed command
// output in a muted style.
func (c *Console) CommandOutputWriter() io.Writer {
	return &styledWriter{
		out:   c.out,
		style: c.styles.CommandOutput,
	}
}

type styledWriter struct {
	out   io.Writer
	style lipgloss.Style
}

// Write styles each line of the chunk. Chunks can end mid-line, so the
// style is applied per line rather than per chunk to keep escape
// sequences balanced at line boundaries.
func (w *styledWriter) Write(data []byte) (int, error) {
	text := string(data)
	lines := strings.Split(text, "\n")

	var rendered strings.Builder

	for i, line := range lines {
		if i > 0 {
			rendered.WriteByte('\n')
		}

		if line != "" {
			rendered.WriteString(w.style.Render(line))
		}
	}

	if _, err := io.WriteString(w.out, rendered.String()); err != nil {
		return 0, fmt.Errorf("failed to write command output: %w", err)
	}

	return len(data), nil
}
