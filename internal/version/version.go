// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package version exposes build information for the installer.
package version

// Build information, overridable through ldflags at release time.
//
//nolint:gochecknoglobals
var (
	Version = "1.1.0"
	Commit  = "unknown"
	Date    = "unknown"
)
