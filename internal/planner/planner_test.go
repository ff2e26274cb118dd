// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewboard/rbinstall/internal/catalog"
	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/planner"
)

// target describes the system a plan is computed for.
type target struct {
	arch     string
	system   string
	version  string
	distroID string
	families []string
	method   domain.InstallMethod
}

func newInstallState(target target) *domain.InstallState {
	return &domain.InstallState{
		SystemInfo: &domain.SystemInfo{
			System:              target.system,
			Arch:                target.arch,
			DistroID:            target.distroID,
			DistroFamilies:      target.families,
			Version:             target.version,
			SystemInstallMethod: target.method,
			SystemPythonExe:     "/usr/bin/python",
			SystemPythonVersion: domain.PythonVersion{Major: 3, Minor: 11},
			BootstrapPythonExe:  "/path/to/bootstrap/python",
			Paths:               map[string]string{},
		},
		ReviewBoardVersionInfo: &domain.PackageVersionInfo{
			IsLatest:       true,
			IsRequested:    true,
			LatestVersion:  "6.0",
			PackageName:    "ReviewBoard",
			RequiresPython: ">=3.8",
			Version:        "6.0",
		},
		PowerPackVersionInfo: &domain.PackageVersionInfo{
			IsLatest:       true,
			IsRequested:    true,
			LatestVersion:  "5.2.2",
			PackageName:    "ReviewBoardPowerPack",
			RequiresPython: ">=3.7",
			Version:        "5.2.2",
		},
		ReviewBotExtensionVersionInfo: &domain.PackageVersionInfo{
			IsLatest:       true,
			IsRequested:    true,
			LatestVersion:  "4.0",
			PackageName:    "reviewbot-extension",
			RequiresPython: ">=3.8",
			Version:        "4.0",
		},
		ReviewBotWorkerVersionInfo: &domain.PackageVersionInfo{
			IsLatest:       true,
			IsRequested:    true,
			LatestVersion:  "4.0",
			PackageName:    "reviewbot-worker",
			RequiresPython: ">=3.8",
			Version:        "4.0",
		},
		InstallPowerPack:          true,
		InstallReviewBotExtension: true,
		InstallReviewBotWorker:    true,
		VenvPath:                  "/path/to/venv",
		VenvPipExe:                "/path/to/venv/bin/pip",
		VenvPythonExe:             "/path/to/venv/bin/python",
		SitedirPath:               "/var/www/reviewboard",
	}
}

func setupStep(command ...string) *domain.InstallStep {
	return &domain.InstallStep{
		InstallMethod: domain.MethodShell,
		Name:          "Setting up support for packages",
		State:         command,
	}
}

// commonTailSteps returns the steps every full plan ends with: the
// virtual environment, Python packaging support, the Review Board
// packages themselves and the service integrations. The Perforce tools
// only have builds for some platforms, so their fail-tolerant step is
// optional.
func commonTailSteps(withP4 bool) []*domain.InstallStep {
	steps := []*domain.InstallStep{
		{
			InstallMethod: domain.MethodShell,
			Name:          "Creating Python virtual environment",
			State: []string{
				"/path/to/bootstrap/python",
				"-m",
				"virtualenv",
				"--download",
				"-p",
				"/usr/bin/python",
				"/path/to/venv",
			},
		},
		{
			InstallMethod: domain.MethodPip,
			Name:          "Installing Python packaging support",
			State: []string{
				"pip",
				"setuptools",
				"wheel",
				"--no-binary",
				"lxml",
				"lxml",
			},
		},
		{
			InstallMethod: domain.MethodPip,
			Name:          "Installing Review Board packages",
			State: []string{
				"ReviewBoard==6.0",
				"ReviewBoardPowerPack==5.2.2",
				"reviewbot-extension==4.0",
				"reviewbot-worker==4.0",
			},
		},
		{
			InstallMethod: domain.MethodReviewBoardExtra,
			Name:          "Installing service integrations",
			State: []string{
				"s3",
				"swift",
				"mercurial",
				"mysql",
				"postgres",
			},
		},
	}

	if withP4 {
		steps = append(steps, &domain.InstallStep{
			InstallMethod: domain.MethodReviewBoardExtra,
			Name:          "Installing service integrations",
			AllowFail:     true,
			State:         []string{"p4"},
		})
	}

	return append(steps, &domain.InstallStep{
		InstallMethod: domain.MethodRemotePyscript,
		Name:          "Installing service integrations",
		State:         []string{"https://pysvn.reviewboard.org"},
	})
}

func TestPlanInstall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         target
		setupSteps     []*domain.InstallStep
		systemPackages []string
		withP4         bool
	}{
		{
			name: "Ubuntu 22.04 x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "22.04",
				distroID: "ubuntu",
				families: []string{"ubuntu", "debian"},
				method:   domain.MethodAPT,
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"libmysqlclient-dev",
				"subversion",
				"libsvn-dev",
			},
			withP4: true,
		},
		{
			name: "Debian 12 x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "12 (bookworm)",
				distroID: "debian",
				families: []string{"debian"},
				method:   domain.MethodAPT,
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"libmariadb-dev",
				"subversion",
				"libsvn-dev",
			},
			withP4: true,
		},
		{
			name: "CentOS Stream 9 x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "9",
				distroID: "centos",
				families: []string{"centos", "rhel", "fedora"},
				method:   domain.MethodYum,
			},
			setupSteps: []*domain.InstallStep{
				setupStep("dnf", "install", "-y", "dnf-plugins-core"),
				setupStep("dnf", "config-manager", "--set-enabled", "crb"),
				setupStep("yum", "install", "-y", "epel-release",
					"epel-next-release"),
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"mariadb-connector-c-devel",
				"subversion",
				"subversion-devel",
			},
			withP4: true,
		},
		{
			name: "Amazon Linux 2 x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "2",
				distroID: "amzn",
				families: []string{"amzn", "centos", "rhel", "fedora"},
				method:   domain.MethodYum,
			},
			setupSteps: []*domain.InstallStep{
				setupStep("yum", "groupinstall", "-y", "Development Tools"),
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"mariadb-devel",
				"subversion",
				"subversion-devel",
			},
			withP4: true,
		},
		{
			name: "RHEL 9.3 aarch64",
			target: target{
				arch:     "aarch64",
				system:   "Linux",
				version:  "9.3",
				distroID: "rhel",
				families: []string{"rhel", "fedora"},
				method:   domain.MethodYum,
			},
			setupSteps: []*domain.InstallStep{
				setupStep("subscription-manager", "repos", "--enable",
					"codeready-builder-for-rhel-9-aarch64-rpms"),
				setupStep("dnf", "install", "-y",
					"https://dl.fedoraproject.org/pub/epel/"+
						"epel-release-latest-9.noarch.rpm"),
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"mariadb-connector-c-devel",
				"subversion",
				"subversion-devel",
			},
			withP4: false,
		},
		{
			name: "Rocky Linux 8.9 x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "8.9",
				distroID: "rocky",
				families: []string{"rocky", "rhel", "centos", "fedora"},
				method:   domain.MethodYum,
			},
			setupSteps: []*domain.InstallStep{
				setupStep("dnf", "install", "-y", "dnf-plugins-core"),
				setupStep("yum", "install", "-y", "epel-release"),
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"mariadb-connector-c-devel",
				"subversion",
				"subversion-devel",
			},
			withP4: true,
		},
		{
			name: "Fedora 40 x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "40",
				distroID: "fedora",
				families: []string{"fedora"},
				method:   domain.MethodYum,
			},
			systemPackages: []string{
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
				"cvs",
				"git",
				"memcached",
				"mariadb-connector-c-devel",
				"subversion",
				"subversion-devel",
			},
			withP4: true,
		},
		{
			name: "openSUSE Tumbleweed x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "20240801",
				distroID: "opensuse-tumbleweed",
				families: []string{
					"opensuse-tumbleweed", "opensuse", "suse",
				},
				method: domain.MethodZypper,
			},
			setupSteps: []*domain.InstallStep{
				setupStep("zypper", "install", "-y", "-t", "pattern",
					"devel_basis"),
			},
			systemPackages: []string{
				"gcc-c++",
				"libffi-devel",
				"libopenssl-devel",
				"libxml2-devel",
				"libxslt-devel",
				"python3-devel",
				"xmlsec1-devel",
				"xmlsec1-openssl-devel",
				"git",
				"memcached",
				"libmariadb-devel",
				"subversion",
				"subversion-devel",
			},
			withP4: true,
		},
		{
			name: "Arch Linux x86_64",
			target: target{
				arch:     "x86_64",
				system:   "Linux",
				version:  "20240801.0.255142",
				distroID: "arch",
				families: []string{"arch"},
				method:   domain.MethodPacman,
			},
			systemPackages: []string{
				"base-devel",
				"libffi",
				"libxml2",
				"libxslt",
				"openssl",
				"perl",
				"xmlsec",
				"cvs",
				"git",
				"memcached",
				"mariadb-libs",
				"subversion",
			},
			withP4: true,
		},
		{
			name: "macOS arm64",
			target: target{
				arch:    "arm64",
				system:  "Darwin",
				version: "14.2",
				method:  domain.MethodBrew,
			},
			systemPackages: []string{
				"cvs",
				"git",
				"memcached",
				"mysql",
				"subversion",
			},
			withP4: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			state := newInstallState(tc.target)

			expected := make([]*domain.InstallStep, 0, len(tc.setupSteps)+8)
			expected = append(expected, tc.setupSteps...)
			expected = append(expected, &domain.InstallStep{
				InstallMethod: tc.target.method,
				Name:          "Installing system packages",
				State:         tc.systemPackages,
			})
			expected = append(expected, commonTailSteps(tc.withP4)...)

			assert.Equal(t, expected, planner.PlanInstall(state))
		})
	}
}

func TestPlanInstallIsDeterministic(t *testing.T) {
	t.Parallel()

	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "22.04",
		distroID: "ubuntu",
		families: []string{"ubuntu", "debian"},
		method:   domain.MethodAPT,
	})

	first := planner.PlanInstall(state)
	require.NotEmpty(t, first)

	for range 10 {
		assert.Equal(t, first, planner.PlanInstall(state))
	}
}

func TestPlanInstallNeverIncludesSAML(t *testing.T) {
	t.Parallel()

	// SAML support needs the xmlsec flag set in the same planning pass,
	// but the flag setters only run while planning system packages. No
	// target ever receives the saml extra as a result.
	targets := []target{
		{
			arch:     "x86_64",
			system:   "Linux",
			version:  "22.04",
			distroID: "ubuntu",
			families: []string{"ubuntu", "debian"},
			method:   domain.MethodAPT,
		},
		{
			arch:     "x86_64",
			system:   "Linux",
			version:  "40",
			distroID: "fedora",
			families: []string{"fedora"},
			method:   domain.MethodYum,
		},
		{
			arch:   "arm64",
			system: "Darwin",
			method: domain.MethodBrew,
		},
	}

	for _, target := range targets {
		for _, step := range planner.PlanInstall(newInstallState(target)) {
			assert.NotContains(t, step.State, "saml",
				"step %q on %s/%s", step.Name, target.system, target.arch)
		}
	}
}

func TestPlanPackagesUnknownTypeYieldsNoSteps(t *testing.T) {
	t.Parallel()

	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "22.04",
		distroID: "ubuntu",
		families: []string{"ubuntu", "debian"},
		method:   domain.MethodAPT,
	})

	assert.Empty(t, planner.PlanPackages(state, planner.Categories,
		"no-such-type", ""))
	assert.Empty(t, planner.PlanPackages(state, nil, catalog.TypeSystem, ""))
}

func TestPlanPackagesSkipReplacesEarlierPackage(t *testing.T) {
	t.Parallel()

	// Amazon Linux 2 needs mariadb-devel instead of the connector
	// package the other RPM distros use. The more specific candidate
	// removes the broad one's package from the shared bucket.
	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "2",
		distroID: "amzn",
		families: []string{"amzn", "centos", "rhel", "fedora"},
		method:   domain.MethodYum,
	})

	steps := planner.PlanPackages(state, []string{"mysql"},
		catalog.TypeSystem, "")

	require.Len(t, steps, 1)
	assert.Equal(t, domain.MethodYum, steps[0].InstallMethod)
	assert.Equal(t, "Installing packages", steps[0].Name)
	assert.Equal(t, []string{"mariadb-devel"}, steps[0].State)
}

func TestPlanPackagesRejectsForeignMethods(t *testing.T) {
	t.Parallel()

	// The apt-build-dep candidate for Subversion is neither the native
	// package manager nor a method usable everywhere, so it never makes
	// it into a plan.
	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "22.04",
		distroID: "ubuntu",
		families: []string{"ubuntu", "debian"},
		method:   domain.MethodAPT,
	})

	steps := planner.PlanPackages(state, []string{"subversion"},
		catalog.TypeSystem, "Installing system packages")

	require.Len(t, steps, 1)
	assert.Equal(t, domain.MethodAPT, steps[0].InstallMethod)
	assert.Equal(t, []string{"subversion", "libsvn-dev"}, steps[0].State)
}

func TestPlanVirtualenv(t *testing.T) {
	t.Parallel()

	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "22.04",
		distroID: "ubuntu",
		families: []string{"ubuntu", "debian"},
		method:   domain.MethodAPT,
	})

	assert.Equal(t, []*domain.InstallStep{
		{
			InstallMethod: domain.MethodShell,
			Name:          "Creating Python virtual environment",
			State: []string{
				"/path/to/bootstrap/python",
				"-m",
				"virtualenv",
				"--download",
				"-p",
				"/usr/bin/python",
				"/path/to/venv",
			},
		},
	}, planner.PlanVirtualenv(state))
}

func TestPlanProductPackages(t *testing.T) {
	t.Parallel()

	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "22.04",
		distroID: "ubuntu",
		families: []string{"ubuntu", "debian"},
		method:   domain.MethodAPT,
	})

	steps := planner.PlanProductPackages(state)
	require.Len(t, steps, 1)
	assert.Equal(t, []string{
		"ReviewBoard==6.0",
		"ReviewBoardPowerPack==5.2.2",
		"reviewbot-extension==4.0",
		"reviewbot-worker==4.0",
	}, steps[0].State)
}

func TestPlanProductPackagesSkipsUnselectedPackages(t *testing.T) {
	t.Parallel()

	state := newInstallState(target{
		arch:     "x86_64",
		system:   "Linux",
		version:  "22.04",
		distroID: "ubuntu",
		families: []string{"ubuntu", "debian"},
		method:   domain.MethodAPT,
	})
	state.PowerPackVersionInfo = nil
	state.ReviewBotExtensionVersionInfo = nil
	state.ReviewBotWorkerVersionInfo = nil

	steps := planner.PlanProductPackages(state)
	require.Len(t, steps, 1)
	assert.Equal(t, domain.MethodPip, steps[0].InstallMethod)
	assert.Equal(t, []string{"ReviewBoard==6.0"}, steps[0].State)
}
