// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"sort"

	"github.com/reviewboard/rbinstall/internal/domain"
)

// systemInfoRows builds the key/value rows summarizing the detected
// system and the package versions that will be installed.
func (w *Wizard) systemInfoRows(state *domain.InstallState) [][2]string {
	systemInfo := state.SystemInfo
	pythonVersion := systemInfo.SystemPythonVersion.String()

	var osKey, osName string

	if systemInfo.System == "Linux" {
		osKey = "Linux distribution"

		osName = systemInfo.DistroName
		if osName == "" {
			osName = "Unknown Distro"
		}
	} else {
		osKey = "Operating system"

		osName = systemInfo.System
		if systemInfo.System == "Darwin" {
			osName = "macOS"
		}
	}

	rows := [][2]string{
		{osKey, fmt.Sprintf("%s %s (%s)",
			osName, systemInfo.Version, systemInfo.Arch)},
		{"Package installer", string(systemInfo.SystemInstallMethod)},
		{"Python", fmt.Sprintf("%s (%s)",
			pythonVersion, systemInfo.SystemPythonExe)},
	}

	for _, pkg := range []struct {
		label string
		info  *domain.PackageVersionInfo
	}{
		{label: "Review Board", info: state.ReviewBoardVersionInfo},
		{label: "Power Pack", info: state.PowerPackVersionInfo},
		{label: "Review Bot worker", info: state.ReviewBotWorkerVersionInfo},
		{label: "Review Bot extension", info: state.ReviewBotExtensionVersionInfo},
	} {
		rows = append(rows,
			[2]string{pkg.label, w.packageVersionText(pkg.info, pythonVersion)})
	}

	tools := make([]string, 0, len(systemInfo.Paths))
	for tool := range systemInfo.Paths {
		tools = append(tools, tool)
	}

	sort.Strings(tools)

	for _, tool := range tools {
		rows = append(rows, [2]string{tool, systemInfo.Paths[tool]})
	}

	return rows
}

// packageVersionText describes the version of a package that will be
// installed, or that the package will be skipped.
func (w *Wizard) packageVersionText(info *domain.PackageVersionInfo,
	pythonVersion string,
) string {
	styles := w.console.Styles()

	if info == nil {
		return styles.Error.Render("Will not be installed")
	}

	switch {
	case info.IsLatest:
		return fmt.Sprintf("%s (%s)",
			info.Version, styles.Success.Render("latest"))

	case info.IsRequested:
		return fmt.Sprintf("%s (%s ─ latest stable version is %s)",
			info.Version,
			styles.Success.Render("requested"),
			info.LatestVersion)
	}

	return fmt.Sprintf("%s (%s ─ latest stable version is %s)",
		info.Version,
		styles.Note.Render("latest for Python "+pythonVersion),
		info.LatestVersion)
}
