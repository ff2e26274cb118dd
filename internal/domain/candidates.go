// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package domain

import "github.com/reviewboard/rbinstall/internal/versions"

// CandidateMatch holds the conditions a target system must satisfy for
// a package candidate to apply. Every field is optional; an absent
// condition always matches.
type CandidateMatch struct {
	// Archs lists machine architectures that must be matched.
	Archs map[string]bool

	// Systems lists operating systems that must be matched.
	Systems map[string]bool

	// DistroFamilies lists distribution families, at least one of which
	// must be shared with the target system.
	DistroFamilies map[string]bool

	// DistroIDs lists distribution IDs that must be matched.
	DistroIDs map[string]bool

	// DistroVersion checks the distribution version.
	DistroVersion versions.MatchFunc

	// RBVersion checks the Review Board version being installed.
	RBVersion versions.MatchFunc

	// HasFlags requires flags set (true) or unset (false) by earlier
	// candidates in the same evaluation.
	HasFlags map[string]bool
}

// PackageCandidate is one entry in the package table: a conditional,
// ordered contribution to the installation plan.
type PackageCandidate struct {
	// Match holds the conditions for this candidate. A nil Match always
	// applies.
	Match *CandidateMatch

	// InstallMethod is the installation method for Packages. Empty means
	// the system-default package manager.
	InstallMethod InstallMethod

	// AllowFail marks packages whose installation failure should not
	// abort the overall installation.
	AllowFail bool

	// Commands lists setup command lines to run before any packages are
	// installed.
	Commands [][]string

	// Packages lists packages to install with InstallMethod.
	Packages []string

	// SkipPackages removes packages added by earlier candidates for the
	// same installation method. Used when a more specific system needs a
	// corrected package name.
	SkipPackages []string

	// SetFlags adjusts the flag set seen by later candidates: true sets
	// a flag, false clears it.
	SetFlags map[string]bool
}
