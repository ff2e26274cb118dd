// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package domain

import "context"

// RunOptions controls a single command execution.
type RunOptions struct {
	// Command is the command line to execute.
	Command []string

	// Displayed replaces Command in any printed or captured output.
	// Defaults to Command.
	Displayed []string

	// Env holds extra environment variables layered over the process
	// environment.
	Env map[string]string

	// Raw connects the command directly to the terminal instead of
	// streaming captured output. Used for commands that run their own
	// interactive UI.
	Raw bool

	// DryRun prints or captures the command without executing it.
	DryRun bool

	// Capture collects the displayed command instead of printing it.
	Capture *CommandCapture
}

// CommandCapture accumulates the command lines a run would execute.
type CommandCapture struct {
	Commands [][]string
}

// Add records one command line.
func (c *CommandCapture) Add(command []string) {
	c.Commands = append(c.Commands, command)
}

// CommandRunner executes external commands on the target system.
type CommandRunner interface {
	// Run executes a command, returning a RunCommandError when it exits
	// unsuccessfully.
	Run(ctx context.Context, opts RunOptions) error
}

// SystemDetector gathers the facts about the target system that drive
// package selection.
type SystemDetector interface {
	// DetectSystem returns system information.
	DetectSystem(ctx context.Context) (*SystemInfo, error)
}

// PackageIndex resolves installable package versions against a Python
// package index.
type PackageIndex interface {
	// LookupVersion finds the newest release of a package no newer than
	// targetVersion ("latest" for no bound) that supports the given
	// Python version. It returns nil with no error when the package is
	// unknown or no release is compatible.
	LookupVersion(ctx context.Context, packageName, targetVersion string, pythonVersion PythonVersion) (*PackageVersionInfo, error)
}

// ScriptDownloader fetches remote installation scripts.
type ScriptDownloader interface {
	// Download fetches the contents of a URL.
	Download(ctx context.Context, url string) ([]byte, error)
}

// FileManager defines the file operations used during installation.
type FileManager interface {
	// FileExists checks if a file exists.
	FileExists(path string) bool

	// EnsureDir creates a directory and all parent directories if they
	// don't exist.
	EnsureDir(path string) error

	// ReadFile reads the contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories as
	// needed.
	WriteFile(path string, data []byte) error

	// ListDir returns the names of the entries in a directory.
	ListDir(path string) ([]string, error)
}
