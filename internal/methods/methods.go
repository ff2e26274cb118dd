// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package methods executes planned installation steps.
//
// Each install method maps to a concrete command line template. The
// package only builds commands and delegates execution to the command
// runner port, so every method can be exercised in tests and in dry-run
// mode without touching the host.
package methods

import (
	"context"
	"fmt"
	"os"

	"github.com/reviewboard/rbinstall/internal/domain"
)

// StepOptions tunes how a single step executes.
type StepOptions struct {
	// DryRun prints the commands without executing them.
	DryRun bool

	// Capture collects the command lines instead of printing or running
	// them. Used to preview an installation plan.
	Capture *domain.CommandCapture
}

// Runner executes installation steps through the platform ports.
type Runner struct {
	runner     domain.CommandRunner
	downloader domain.ScriptDownloader
}

// NewRunner creates a step runner on top of the given execution ports.
func NewRunner(runner domain.CommandRunner, downloader domain.ScriptDownloader) *Runner {
	return &Runner{
		runner:     runner,
		downloader: downloader,
	}
}

// RunMethod executes one installation step for the given method and
// arguments. Package installation failures are reported as
// *domain.InstallPackageError so callers can honor fail-tolerant steps.
func (r *Runner) RunMethod(ctx context.Context, state *domain.InstallState,
	method domain.InstallMethod, args []string, opts StepOptions,
) error {
	switch method {
	case domain.MethodAPT:
		return r.installPackages(ctx, method,
			append([]string{"apt-get", "install", "-y"}, args...),
			args, opts)

	case domain.MethodAPTBuildDep:
		return r.installPackages(ctx, method,
			append([]string{"apt-get", "build-dep", "-y"}, args...),
			args, opts)

	case domain.MethodBrew:
		return r.installPackages(ctx, method,
			append([]string{"brew", "install"}, args...),
			args, opts)

	case domain.MethodPacman:
		return r.installPackages(ctx, method,
			append([]string{"pacman", "-S", "--noconfirm"}, args...),
			args, opts)

	case domain.MethodPip:
		return r.installPackages(ctx, method, pipCommand(state, args),
			args, opts)

	case domain.MethodReviewBoardExtra:
		// Extras install as optional dependency groups of the main
		// ReviewBoard package.
		extras := make([]string, len(args))

		for i, name := range args {
			extras[i] = fmt.Sprintf("ReviewBoard[%s]", name)
		}

		return r.installPackages(ctx, method, pipCommand(state, extras),
			extras, opts)

	case domain.MethodRemotePyscript:
		return r.runRemoteScript(ctx, state, args, opts)

	case domain.MethodShell:
		if err := r.run(ctx, args, opts); err != nil {
			return &domain.InstallPackageError{
				InstallMethod: domain.MethodShell,
				Command:       args,
				Err:           err,
			}
		}

		return nil

	case domain.MethodYum:
		return r.installPackages(ctx, method,
			append([]string{"yum", "install", "-y"}, args...),
			args, opts)

	case domain.MethodZypper:
		return r.installPackages(ctx, method,
			append([]string{"zypper", "install", "-y"}, args...),
			args, opts)

	case domain.MethodSystemDefault:
		// The planner resolves this before any step reaches execution.
		return fmt.Errorf("%w: %s",
			domain.ErrUnsupportedInstallMethod, method)

	default:
		return fmt.Errorf("%w: %s",
			domain.ErrUnsupportedInstallMethod, method)
	}
}

// installPackages runs a package manager command and tags any failure
// with the method and package list it was installing.
func (r *Runner) installPackages(ctx context.Context,
	method domain.InstallMethod, command, packages []string,
	opts StepOptions,
) error {
	if err := r.run(ctx, command, opts); err != nil {
		return &domain.InstallPackageError{
			InstallMethod: method,
			Command:       command,
			Packages:      packages,
			Err:           err,
		}
	}

	return nil
}

// runRemoteScript downloads a Python script and executes it with the
// virtual environment's interpreter.
func (r *Runner) runRemoteScript(ctx context.Context,
	state *domain.InstallState, args []string, opts StepOptions,
) error {
	if len(args) != 1 {
		// More than one URL means the package tables are broken, not
		// that the system is unsupported.
		return domain.NewInstallerErrorf(
			"The remote script install method requires exactly one URL "+
				"(got %d).",
			len(args))
	}

	scriptURL := args[0]
	pythonExe := state.VenvPythonExe

	if opts.DryRun {
		// Nothing is downloaded in dry-run mode. The URL stands in for
		// the script path so the previewed command stays meaningful.
		return r.run(ctx, []string{pythonExe, scriptURL}, opts)
	}

	script, err := r.downloader.Download(ctx, scriptURL)
	if err != nil {
		return domain.NewInstallerErrorf(
			"Unable to download the installer script at %s: %s",
			scriptURL, err)
	}

	tmpFile, err := os.CreateTemp("", "rbinstall-*.py")
	if err != nil {
		return domain.NewInstallerErrorf(
			"Unable to write the installer script to disk: %s", err)
	}

	tmpName := tmpFile.Name()
	defer os.Remove(tmpName)

	if _, err := tmpFile.Write(script); err != nil {
		tmpFile.Close()

		return domain.NewInstallerErrorf(
			"Unable to write the installer script to disk: %s", err)
	}

	if err := tmpFile.Close(); err != nil {
		return domain.NewInstallerErrorf(
			"Unable to write the installer script to disk: %s", err)
	}

	command := []string{pythonExe, tmpName}

	if err := r.run(ctx, command, opts); err != nil {
		return &domain.InstallPackageError{
			InstallMethod: domain.MethodRemotePyscript,
			Command:       command,
			Packages:      []string{scriptURL},
			Err:           err,
		}
	}

	return nil
}

func (r *Runner) run(ctx context.Context, command []string,
	opts StepOptions,
) error {
	return r.runner.Run(ctx, domain.RunOptions{
		Command: command,
		DryRun:  opts.DryRun,
		Capture: opts.Capture,
	})
}

func pipCommand(state *domain.InstallState, packages []string) []string {
	return append([]string{
		state.VenvPipExe,
		"install",
		"--disable-pip-version-check",
		"--no-python-version-warning",
	}, packages...)
}
