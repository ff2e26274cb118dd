// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package domain

import (
	"fmt"
	"path/filepath"
)

// PythonVersion identifies a Python interpreter version.
type PythonVersion struct {
	Major int
	Minor int
	Micro int
}

func (v PythonVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// SystemInfo contains everything detected about the target system.
// It is built once during startup and never modified afterward.
type SystemInfo struct {
	// System is the operating system name ("Linux" or "Darwin").
	System string `json:"system"`

	// Arch is the machine architecture ("x86_64", "aarch64", "arm64").
	Arch string `json:"arch"`

	// DistroID is the os-release ID value. Empty on macOS.
	DistroID string `json:"distro_id,omitempty"`

	// DistroName is the os-release NAME value. Empty on macOS.
	DistroName string `json:"distro_name,omitempty"`

	// DistroFullName is the full display name for the distribution
	// (PRETTY_NAME when available).
	DistroFullName string `json:"distro_full_name,omitempty"`

	// DistroFamilies holds the distribution ID plus every ID_LIKE entry.
	DistroFamilies []string `json:"distro_families,omitempty"`

	// Version is the distribution or macOS version.
	Version string `json:"version"`

	// SystemInstallMethod is the native package manager for the system.
	SystemInstallMethod InstallMethod `json:"system_install_method"`

	// SystemPythonExe is the Python used inside the virtual environment.
	SystemPythonExe string `json:"system_python_exe"`

	// SystemPythonVersion is the version of SystemPythonExe.
	SystemPythonVersion PythonVersion `json:"system_python_version"`

	// BootstrapPythonExe is the Python used to create the virtual
	// environment.
	BootstrapPythonExe string `json:"bootstrap_python_exe"`

	// Paths maps tool names to detected locations (such as "brew").
	Paths map[string]string `json:"paths,omitempty"`
}

// HasDistroFamily reports whether the system belongs to the given
// distribution family.
func (s *SystemInfo) HasDistroFamily(family string) bool {
	for _, f := range s.DistroFamilies {
		if f == family {
			return true
		}
	}

	return false
}

// PackageVersionInfo describes a package version resolved against the
// Python Package Index.
type PackageVersionInfo struct {
	// IsLatest indicates the version is the newest compatible release.
	IsLatest bool `json:"is_latest"`

	// IsRequested indicates the version equals the requested target.
	IsRequested bool `json:"is_requested"`

	// LatestVersion is the newest release on the index, compatible or not.
	LatestVersion string `json:"latest_version"`

	// PackageName is the canonical package name from the index.
	PackageName string `json:"package_name"`

	// RequiresPython is the Python version specifier for the release.
	RequiresPython string `json:"requires_python"`

	// Version is the release that will be installed.
	Version string `json:"version"`
}

// InstallStep is a single unit of work in the installation plan.
type InstallStep struct {
	// InstallMethod selects the executor for this step.
	InstallMethod InstallMethod `json:"install_method"`

	// Name is the step's display name.
	Name string `json:"name"`

	// AllowFail marks a step whose failure does not abort the install.
	AllowFail bool `json:"allow_fail,omitempty"`

	// State is the method-specific argument list: a literal command line
	// for shell steps, a package list for package steps.
	State []string `json:"state,omitempty"`
}

// InstallState carries all decisions and computed data for one
// installation run.
type InstallState struct {
	SystemInfo *SystemInfo

	// Steps is the computed installation plan.
	Steps []*InstallStep

	// Resolved versions for the product packages. A nil entry means the
	// package will not be installed.
	ReviewBoardVersionInfo        *PackageVersionInfo
	PowerPackVersionInfo          *PackageVersionInfo
	ReviewBotExtensionVersionInfo *PackageVersionInfo
	ReviewBotWorkerVersionInfo    *PackageVersionInfo

	// Component selection.
	InstallPowerPack          bool
	InstallReviewBotExtension bool
	InstallReviewBotWorker    bool

	// Target paths.
	VenvPath      string
	VenvPipExe    string
	VenvPythonExe string
	SitedirPath   string

	// Run behavior.
	CreateSitedir     bool
	DryRun            bool
	UnattendedInstall bool
}

// SetVenvPath records the installation directory along with the
// executables the install will create inside it.
func (s *InstallState) SetVenvPath(path string) {
	s.VenvPath = path
	s.VenvPipExe = filepath.Join(path, "bin", "pip")
	s.VenvPythonExe = filepath.Join(path, "bin", "python")
}

// RBSiteExe returns the path of the rb-site executable inside the
// installation directory.
func (s *InstallState) RBSiteExe() string {
	return filepath.Join(s.VenvPath, "bin", "rb-site")
}
