// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package catalog holds the declarative table of package candidates for
// every supported system.
//
// The table maps a category (a capability such as "mysql" or
// "subversion") to package types within it, and each package type to an
// ordered list of candidates. Order matters: the planner walks each
// list exactly once, top to bottom, and later candidates may skip
// packages added by earlier ones or depend on flags they set.
package catalog

import (
	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/versions"
)

// Package types nested within each category.
const (
	TypeSystem              = "system"
	TypeVirtualenv          = "virtualenv"
	TypeRBExtras            = "rb-extras"
	TypeServiceIntegrations = "service-integrations"
)

// Bundle maps a package type to its ordered candidate list.
type Bundle map[string][]*domain.PackageCandidate

// Packages lists all candidates for installation across all supported
// systems.
var Packages = map[string]Bundle{ //nolint:gochecknoglobals
	// System packages every install needs. Some (such as xmlsec
	// support) are installed regardless of the selected services so the
	// modules can be enabled later without revisiting system packages.
	"common": {
		TypeSystem: {
			// Package management bootstrapping commands.

			// Amazon Linux 2
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"amzn": true},
					DistroVersion: versions.Match(versions.OpEQ, 2),
				},
				Commands: [][]string{
					// Needed for g++ and friends.
					{"yum", "groupinstall", "-y", "Development Tools"},
				},
			},

			// CentOS
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{"centos": true},
				},
				Commands: [][]string{
					{"dnf", "install", "-y", "dnf-plugins-core"},
					{"dnf", "config-manager", "--set-enabled", "crb"},
					{"yum", "install", "-y", "epel-release",
						"epel-next-release"},
				},
			},

			// openSUSE
			{
				Match: &domain.CandidateMatch{
					Systems:        map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{"opensuse": true},
				},
				Commands: [][]string{
					{"zypper", "install", "-y", "-t", "pattern",
						"devel_basis"},
				},
			},

			// Red Hat Enterprise Linux 8 (x86)
			{
				Match: &domain.CandidateMatch{
					Archs:         map[string]bool{"x86_64": true},
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rhel": true},
					DistroVersion: versions.Match(versions.OpEQ, 8),
				},
				Commands: [][]string{
					{"subscription-manager", "repos", "--enable",
						"codeready-builder-for-rhel-8-x86_64-rpms"},
					{"dnf", "install", "-y",
						"https://dl.fedoraproject.org/pub/epel/" +
							"epel-release-latest-8.noarch.rpm"},
				},
			},

			// Red Hat Enterprise Linux 8 (ARM)
			{
				Match: &domain.CandidateMatch{
					Archs:         map[string]bool{"aarch64": true},
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rhel": true},
					DistroVersion: versions.Match(versions.OpEQ, 8),
				},
				Commands: [][]string{
					{"subscription-manager", "repos", "--enable",
						"codeready-builder-for-rhel-8-aarch64-rpms"},
					{"dnf", "install", "-y",
						"https://dl.fedoraproject.org/pub/epel/" +
							"epel-release-latest-8.noarch.rpm"},
				},
			},

			// Red Hat Enterprise Linux 9 (x86)
			{
				Match: &domain.CandidateMatch{
					Archs:         map[string]bool{"x86_64": true},
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rhel": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				Commands: [][]string{
					{"subscription-manager", "repos", "--enable",
						"codeready-builder-for-rhel-9-x86_64-rpms"},
					{"dnf", "install", "-y",
						"https://dl.fedoraproject.org/pub/epel/" +
							"epel-release-latest-9.noarch.rpm"},
				},
			},

			// Red Hat Enterprise Linux 9 (ARM)
			{
				Match: &domain.CandidateMatch{
					Archs:         map[string]bool{"aarch64": true},
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rhel": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				Commands: [][]string{
					{"subscription-manager", "repos", "--enable",
						"codeready-builder-for-rhel-9-aarch64-rpms"},
					{"dnf", "install", "-y",
						"https://dl.fedoraproject.org/pub/epel/" +
							"epel-release-latest-9.noarch.rpm"},
				},
			},

			// Rocky Linux 8
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rocky": true},
					DistroVersion: versions.Match(versions.OpLE, 9),
				},
				Commands: [][]string{
					{"dnf", "install", "-y", "dnf-plugins-core"},
					{"yum", "install", "-y", "epel-release"},
				},
			},

			// Rocky Linux 9
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rocky": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				Commands: [][]string{
					{"dnf", "install", "-y", "dnf-plugins-core"},
					{"dnf", "config-manager", "--set-enabled", "crb"},
					{"yum", "install", "-y", "epel-release"},
				},
			},

			// Packages.

			// Arch Linux
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{"arch": true},
				},
				InstallMethod: domain.MethodPacman,
				Packages: []string{
					"base-devel",
					"libffi",
					"libxml2",
					"libxslt",
					"openssl",
					"perl",
					"xmlsec",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},

			// Amazon Linux/CentOS/Fedora/RHEL/Rocky Linux
			//
			// Common rules for all RPM-based distros. More specific
			// rules for given distros follow, as they don't all share
			// the same packages or naming conventions.
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"amzn":   true,
						"centos": true,
						"fedora": true,
						"rhel":   true,
					},
				},
				InstallMethod: domain.MethodYum,
				Packages: []string{
					"gcc",
					"gcc-c++",
					"libffi-devel",
					"libxml2-devel",
					"libxslt-devel",
					"make",
					"openssl-devel",
					"patch",
					"perl",
					"python3-devel",
					"libtool-ltdl-devel",
				},
			},

			// CentOS 9+
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"linux": true},
					DistroIDs:     map[string]bool{"centos": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				Packages: []string{
					"xmlsec1-devel",
					"xmlsec1-openssl-devel",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},

			// Fedora
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"linux": true},
					DistroIDs: map[string]bool{"fedora": true},
				},
				Packages: []string{
					"xmlsec1-devel",
					"xmlsec1-openssl-devel",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},

			// Red Hat Enterprise Linux 9+
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"linux": true},
					DistroIDs:     map[string]bool{"rhel": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				Packages: []string{
					"xmlsec1-devel",
					"xmlsec1-openssl-devel",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},

			// Rocky Linux 9+
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"linux": true},
					DistroIDs:     map[string]bool{"rocky": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				Packages: []string{
					"xmlsec1-devel",
					"xmlsec1-openssl-devel",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},

			// Debian/Ubuntu
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"debian": true,
						"ubuntu": true,
					},
				},
				InstallMethod: domain.MethodAPT,
				Packages: []string{
					"build-essential",
					"libffi-dev",
					"libjpeg-dev",
					"libssl-dev",
					"libxml2-dev",
					"libxslt-dev",
					"libxmlsec1-dev",
					"libxmlsec1-openssl",
					"patch",
					"pkg-config",
					"python3-dev",
					"python3-pip",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},

			// openSUSE
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"opensuse": true,
					},
				},
				InstallMethod: domain.MethodZypper,
				Packages: []string{
					"gcc-c++",
					"libffi-devel",
					"libopenssl-devel",
					"libxml2-devel",
					"libxslt-devel",
					"python3-devel",
					"xmlsec1-devel",
					"xmlsec1-openssl-devel",
				},
				SetFlags: map[string]bool{
					"has_xmlsec": true,
				},
			},
		},

		TypeVirtualenv: {
			{
				InstallMethod: domain.MethodPip,
				Packages: []string{
					"pip",
					"setuptools",
					"wheel",

					// Building against local xmlsec/libxml2 avoids
					// crashes and other errors at runtime.
					"--no-binary",
					"lxml",
					"lxml",
				},
			},
		},
	},

	// Django Storages support
	"django-storages": {
		TypeServiceIntegrations: {
			{
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages: []string{
					"s3",
					"swift",
				},
			},
		},
	},

	// CVS packages.
	"cvs": {
		TypeSystem: {
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{
						"amzn":     true,
						"arch":     true,
						"centos":   true,
						"debian":   true,
						"fedora":   true,
						"opensuse": true,
						"rocky":    true,
						"ubuntu":   true,
					},
				},
				InstallMethod: domain.MethodSystemDefault,
				Packages:      []string{"cvs"},
			},

			// Red Hat Enterprise Linux 9+
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"rhel": true},
					DistroVersion: versions.Match(versions.OpGE, 9),
				},
				InstallMethod: domain.MethodSystemDefault,
				Packages:      []string{"cvs"},
			},

			// macOS
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Darwin": true},
				},
				InstallMethod: domain.MethodBrew,
				Packages:      []string{"cvs"},
			},
		},
	},

	// Git packages.
	"git": {
		TypeSystem: {
			{
				InstallMethod: domain.MethodSystemDefault,
				Packages:      []string{"git"},
			},
		},
	},

	// LDAP packages.
	"ldap": {
		TypeServiceIntegrations: {
			{
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"ldap"},
			},
		},
	},

	// Memcached packages.
	"memcached": {
		TypeSystem: {
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{
						"Darwin": true,
						"Linux":  true,
					},
				},
				InstallMethod: domain.MethodSystemDefault,
				Packages:      []string{"memcached"},
			},
		},
	},

	// Mercurial packages.
	"mercurial": {
		TypeServiceIntegrations: {
			{
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"mercurial"},
			},
		},
	},

	// MySQL packages.
	"mysql": {
		TypeSystem: {
			// Amazon Linux/CentOS/Fedora/RHEL
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"centos": true,
						"fedora": true,
						"rhel":   true,
						"rocky":  true,
					},
				},
				InstallMethod: domain.MethodYum,
				Packages: []string{
					"mariadb-connector-c-devel",
				},
			},

			// Amazon Linux 2 uses a different package for the MySQL
			// devel support.
			{
				Match: &domain.CandidateMatch{
					Systems:       map[string]bool{"Linux": true},
					DistroIDs:     map[string]bool{"amzn": true},
					DistroVersion: versions.Match(versions.OpEQ, 2),
				},
				InstallMethod: domain.MethodYum,
				SkipPackages: []string{
					"mariadb-connector-c-devel",
				},
				Packages: []string{
					"mariadb-devel",
				},
			},

			// Arch Linux
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{"arch": true},
				},
				InstallMethod: domain.MethodPacman,
				Packages: []string{
					"mariadb-libs",
				},
			},

			// Debian
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{"debian": true},
				},
				InstallMethod: domain.MethodAPT,
				Packages: []string{
					"libmariadb-dev",
				},
			},

			// openSUSE
			{
				Match: &domain.CandidateMatch{
					Systems:        map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{"opensuse": true},
				},
				InstallMethod: domain.MethodZypper,
				Packages: []string{
					"libmariadb-devel",
				},
			},

			// Ubuntu
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{"ubuntu": true},
				},
				InstallMethod: domain.MethodAPT,
				Packages: []string{
					"libmysqlclient-dev",
				},
			},

			// macOS
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Darwin": true},
				},
				InstallMethod: domain.MethodBrew,
				Packages: []string{
					"mysql",
				},
			},
		},

		TypeServiceIntegrations: {
			{
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"mysql"},
			},
		},
	},

	// Perforce packages.
	"perforce": {
		TypeServiceIntegrations: {
			// Linux (Common)
			{
				AllowFail: true,
				Match: &domain.CandidateMatch{
					Archs:   map[string]bool{"x86_64": true},
					Systems: map[string]bool{"Linux": true},
				},
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"p4"},
			},

			// macOS
			{
				AllowFail: true,
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Darwin": true},
				},
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"p4"},
			},
		},
	},

	// Postgres packages.
	"postgres": {
		TypeServiceIntegrations: {
			{
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"postgres"},
			},
		},
	},

	// SAML packages.
	"saml": {
		TypeServiceIntegrations: {
			{
				Match: &domain.CandidateMatch{
					HasFlags: map[string]bool{
						"has_xmlsec": true,
					},
					RBVersion: versions.Match(versions.OpGE, 6, 0),
				},
				InstallMethod: domain.MethodReviewBoardExtra,
				Packages:      []string{"saml"},
			},
		},
	},

	// Subversion packages.
	"subversion": {
		TypeSystem: {
			// Arch Linux
			{
				Match: &domain.CandidateMatch{
					Systems:   map[string]bool{"Linux": true},
					DistroIDs: map[string]bool{"arch": true},
				},
				InstallMethod: domain.MethodPacman,
				Packages: []string{
					"subversion",
				},
			},

			// CentOS/Fedora/RHEL
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"centos": true,
						"fedora": true,
						"rhel":   true,
					},
				},
				InstallMethod: domain.MethodYum,
				Packages: []string{
					"subversion",
					"subversion-devel",
				},
			},

			// Debian/Ubuntu
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"debian": true,
						"ubuntu": true,
					},
				},
				InstallMethod: domain.MethodAPT,
				Packages: []string{
					"subversion",
					"libsvn-dev",
				},
			},
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{
						"debian": true,
						"ubuntu": true,
					},
				},
				InstallMethod: domain.MethodAPTBuildDep,
				Packages: []string{
					"python3-svn",
				},
			},

			// openSUSE
			{
				Match: &domain.CandidateMatch{
					Systems:        map[string]bool{"Linux": true},
					DistroFamilies: map[string]bool{"opensuse": true},
				},
				InstallMethod: domain.MethodZypper,
				Packages: []string{
					"subversion",
					"subversion-devel",
				},
			},

			// macOS
			{
				Match: &domain.CandidateMatch{
					Systems: map[string]bool{"Darwin": true},
				},
				InstallMethod: domain.MethodBrew,
				Packages: []string{
					"subversion",
				},
			},
		},

		TypeServiceIntegrations: {
			{
				InstallMethod: domain.MethodRemotePyscript,
				Packages: []string{
					"https://pysvn.reviewboard.org",
				},
			},
		},
	},
}
