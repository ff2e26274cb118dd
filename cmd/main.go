// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the Review Board installer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/reviewboard/rbinstall/internal/cli"
	"github.com/reviewboard/rbinstall/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Acquire a process lock so two installers cannot run system
	// package managers against each other.
	lockPath := filepath.Join(os.TempDir(), "rbinstall.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire the installer lock: %v\n", err)

		return 1
	}

	if !locked {
		fmt.Fprintln(os.Stderr, "Another rbinstall instance is already running.")

		return 1
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr,
				"Warning: failed to release the installer lock: %v\n",
				unlockErr)
		}
	}()

	// Control-C cancels the context. The wizard treats cancellation as
	// a clean abort, so an interrupted install exits 0 like any other
	// user cancellation.
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp().Run(ctx, os.Args); err != nil {
		// The command reports its own errors. Anything else reaching
		// this point is unexpected.
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			if message := exitErr.Error(); message != "" {
				fmt.Fprintln(os.Stderr, message)
			}

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 1
	}

	return 0
}
