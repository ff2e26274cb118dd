// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package platform runs system commands and inspects the host system.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/reviewboard/rbinstall/internal/console"
	"github.com/reviewboard/rbinstall/internal/domain"
)

// CommandRunner implements the CommandRunner port for real system
// commands.
//
// Every command is echoed to the console (or recorded in a capture
// buffer) before it runs, so users always see what the installer is
// doing to their system.
type CommandRunner struct {
	console *console.Console
}

// NewCommandRunner creates a new command runner writing to terminal.
func NewCommandRunner(terminal *console.Console) *CommandRunner {
	return &CommandRunner{
		console: terminal,
	}
}

// Run executes a command according to options.
//
// The displayed form of the command is echoed or captured first. In
// dry-run mode nothing is executed beyond that. Command output streams
// to the console in a muted style unless Raw hands the terminal to the
// child process.
func (r *CommandRunner) Run(ctx context.Context, options domain.RunOptions) error {
	if len(options.Command) == 0 {
		return domain.NewInstallerError("No command was provided to run.")
	}

	displayed := options.Displayed
	if displayed == nil {
		displayed = options.Command
	}

	if options.Capture != nil {
		options.Capture.Add(displayed)
	} else {
		r.console.CommandEcho(console.JoinCmdline(displayed))
	}

	if options.DryRun {
		return nil
	}

	// #nosec G204 - commands come from the vetted install plan.
	cmd := exec.CommandContext(ctx, options.Command[0], options.Command[1:]...)
	cmd.Env = mergedEnv(options.Env)

	if options.Raw {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		output := r.console.CommandOutputWriter()
		cmd.Stdout = output
		cmd.Stderr = output
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.RunCommandError{
			Command:  options.Command,
			ExitCode: exitErr.ExitCode(),
		}
	}

	return fmt.Errorf("failed to run %s: %w", options.Command[0], err)
}

// mergedEnv layers overrides on top of the current environment. Keys
// are sorted so the child environment is deterministic.
func mergedEnv(overrides map[string]string) []string {
	env := os.Environ()

	if len(overrides) == 0 {
		return env
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		env = append(env, key+"="+overrides[key])
	}

	return env
}

// MockCommandRunner implements the CommandRunner port for testing. It
// mirrors the real runner's capture and dry-run behavior so callers can
// assert on what would actually execute.
type MockCommandRunner struct {
	// RunOptions records every Run call in order, dry runs included.
	RunOptions []domain.RunOptions

	executed [][]string
	failures map[string]int
}

// NewMockCommandRunner creates a new mock command runner for testing.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		failures: make(map[string]int),
	}
}

// SetFailure makes the given command fail with an exit code.
func (r *MockCommandRunner) SetFailure(command []string, exitCode int) {
	r.failures[strings.Join(command, " ")] = exitCode
}

// Run records the command and returns any scripted failure.
func (r *MockCommandRunner) Run(_ context.Context, options domain.RunOptions) error {
	r.RunOptions = append(r.RunOptions, options)

	if options.Capture != nil {
		displayed := options.Displayed
		if displayed == nil {
			displayed = options.Command
		}

		options.Capture.Add(displayed)
	}

	if options.DryRun {
		return nil
	}

	r.executed = append(r.executed, options.Command)

	if exitCode, exists := r.failures[strings.Join(options.Command, " ")]; exists {
		return &domain.RunCommandError{
			Command:  options.Command,
			ExitCode: exitCode,
		}
	}

	return nil
}

// Commands returns every command that executed. Captured and dry-run
// commands are not included.
func (r *MockCommandRunner) Commands() [][]string {
	return r.executed
}
