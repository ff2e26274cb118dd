// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	// ErrUnsupportedInstallMethod indicates the installation method has
	// no registered executor.
	ErrUnsupportedInstallMethod = errors.New("unsupported installation method")
	// ErrPackageNotFound indicates the package does not exist on the
	// package index.
	ErrPackageNotFound = errors.New("package not found")
)

// InstallerError is a fatal, user-facing installation failure. Its
// message is shown to the user as-is and should explain what went wrong
// and what to do about it.
type InstallerError struct {
	Message string
}

// NewInstallerError creates an InstallerError with the given message.
func NewInstallerError(message string) *InstallerError {
	return &InstallerError{Message: message}
}

// NewInstallerErrorf creates an InstallerError with a formatted message.
func NewInstallerErrorf(format string, args ...any) *InstallerError {
	return &InstallerError{Message: fmt.Sprintf(format, args...)}
}

func (e *InstallerError) Error() string {
	return e.Message
}

// RunCommandError reports a command that exited unsuccessfully.
type RunCommandError struct {
	Command  []string
	ExitCode int
}

func (e *RunCommandError) Error() string {
	return fmt.Sprintf("Error executing `%s`: exit code %d",
		strings.Join(e.Command, " "), e.ExitCode)
}

// InstallPackageError reports a failed installation step. It carries
// the installation method, the packages involved, and the command that
// failed so callers can present or re-tag the failure.
type InstallPackageError struct {
	InstallMethod InstallMethod
	Command       []string
	Packages      []string
	Err           error
}

func (e *InstallPackageError) Error() string {
	command := strings.Join(e.Command, " ")

	if e.InstallMethod == MethodShell {
		return fmt.Sprintf(
			"There was an error executing the command `%s`. The error "+
				"was: %v",
			command, e.Err)
	}

	return fmt.Sprintf(
		"There was an error installing one or more packages (%s). The "+
			"command that failed was: `%s`. The error was: %v",
		strings.Join(e.Packages, " "), command, e.Err)
}

func (e *InstallPackageError) Unwrap() error {
	return e.Err
}

// ExitError provides specific exit codes for different failure modes.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
