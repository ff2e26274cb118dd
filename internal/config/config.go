// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package config carries the installer's run configuration.
//
// Configuration is resolved in three layers: built-in defaults, then
// an optional profile file, then command line flags.
package config

// Built-in defaults.
const (
	// DefaultInstallPath is where the Review Board virtual environment
	// is created.
	DefaultInstallPath = "/opt/reviewboard"

	// DefaultSitedirPath is where the first site directory is created.
	DefaultSitedirPath = "/var/www/reviewboard"

	// LatestVersion requests the newest compatible release of a
	// package.
	LatestVersion = "latest"
)

// Config is the resolved configuration for one installer run.
type Config struct {
	// InstallPath is the virtual environment location.
	InstallPath string

	// SitedirPath is the site directory location.
	SitedirPath string

	// CreateSitedir controls whether a site directory is created after
	// installing.
	CreateSitedir bool

	// Component selection.
	InstallPowerPack          bool
	InstallReviewBotExtension bool
	InstallReviewBotWorker    bool

	// Target versions. Each is "latest" or a version string.
	ReviewBoardVersion        string
	PowerPackVersion          string
	ReviewBotExtensionVersion string
	ReviewBotWorkerVersion    string

	// Run behavior.
	DryRun     bool
	Debug      bool
	NoColor    bool
	Unattended bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InstallPath:               DefaultInstallPath,
		SitedirPath:               DefaultSitedirPath,
		CreateSitedir:             true,
		InstallPowerPack:          true,
		InstallReviewBotExtension: true,
		InstallReviewBotWorker:    true,
		ReviewBoardVersion:        LatestVersion,
		PowerPackVersion:          LatestVersion,
		ReviewBotExtensionVersion: LatestVersion,
		ReviewBotWorkerVersion:    LatestVersion,
	}
}
