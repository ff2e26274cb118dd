// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package domain contains the core types for the Review Board installer.
package domain

// InstallMethod identifies how a set of packages gets installed.
type InstallMethod string

// Installation methods supported across all target systems.
const (
	MethodAPT              InstallMethod = "apt"
	MethodAPTBuildDep      InstallMethod = "apt-build-dep"
	MethodBrew             InstallMethod = "brew"
	MethodPacman           InstallMethod = "pacman" // Arch
	MethodPip              InstallMethod = "pip"
	MethodRemotePyscript   InstallMethod = "remote-pyscript"
	MethodReviewBoardExtra InstallMethod = "reviewboard-extra"
	MethodShell            InstallMethod = "shell"
	MethodYum              InstallMethod = "yum" // RHEL/CentOS/Fedora
	MethodZypper           InstallMethod = "zypper"

	// MethodSystemDefault resolves to the native package manager of the
	// target system before any step is planned or run.
	MethodSystemDefault InstallMethod = "system-default"
)

// CommonInstallMethods lists the methods that are usable on every target
// system, regardless of its native package manager.
var CommonInstallMethods = map[InstallMethod]bool{
	MethodPip:              true,
	MethodRemotePyscript:   true,
	MethodReviewBoardExtra: true,
	MethodShell:            true,
}

// Resolve maps the system-default method to the given native method. A
// candidate that declares no method at all resolves the same way.
func (m InstallMethod) Resolve(systemMethod InstallMethod) InstallMethod {
	if m == "" || m == MethodSystemDefault {
		return systemMethod
	}

	return m
}

// UsableWith reports whether an already-resolved method can run on a
// system whose native package manager is systemMethod.
func (m InstallMethod) UsableWith(systemMethod InstallMethod) bool {
	return CommonInstallMethods[m] || m == systemMethod
}
