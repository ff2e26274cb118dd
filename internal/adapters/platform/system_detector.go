// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/logging"
)

const installationDocsURL = "https://www.reviewboard.org/docs/manual/latest/admin/installation/"

//nolint:gochecknoglobals
var (
	osReleaseLineRe     = regexp.MustCompile(`^([A-Za-z0-9_]+)=(.*)$`)
	osReleaseUnescapeRe = regexp.MustCompile("\\\\([\\\\$\"'`])")
	pythonVersionRe     = regexp.MustCompile(`Python (\d+)\.(\d+)\.(\d+)`)
)

// SystemDetector implements the SystemDetector port for Linux and
// macOS systems.
//
// Detection can be steered through environment variables, mainly for
// testing: RBINSTALL_FORCE_SYSTEM, RBINSTALL_FORCE_ARCH,
// RBINSTALL_FORCE_SYSTEM_PYTHON_EXE, and RBINSTALL_OS_RELEASE_FILE.
type SystemDetector struct {
	fileManager domain.FileManager
	logger      zerolog.Logger
}

// NewSystemDetector creates a new system detector.
func NewSystemDetector(fileManager domain.FileManager) *SystemDetector {
	return &SystemDetector{
		fileManager: fileManager,
		logger:      logging.GetLogger("platform"),
	}
}

// DetectSystem returns the facts about this system that drive package
// selection.
func (d *SystemDetector) DetectSystem(ctx context.Context) (*domain.SystemInfo, error) {
	system := os.Getenv("RBINSTALL_FORCE_SYSTEM")
	if system == "" {
		system = systemName(runtime.GOOS)
	}

	if system != "Linux" && system != "Darwin" {
		return nil, domain.NewInstallerErrorf(
			"Review Board can only be installed in Linux or macOS using this "+
				"installation script. You may need to install through another "+
				"method. See %s for instructions.",
			installationDocsURL)
	}

	arch := os.Getenv("RBINSTALL_FORCE_ARCH")
	if arch == "" {
		arch = machineArch(system)
	}

	pythonExe, err := d.findSystemPython()
	if err != nil {
		return nil, err
	}

	pythonVersion, err := d.detectPythonVersion(ctx, pythonExe)
	if err != nil {
		return nil, err
	}

	info := &domain.SystemInfo{
		System:              system,
		Arch:                arch,
		SystemPythonExe:     pythonExe,
		SystemPythonVersion: pythonVersion,
		BootstrapPythonExe:  pythonExe,
		Paths:               map[string]string{},
	}

	if system == "Linux" {
		err = d.detectLinux(info)
	} else {
		err = d.detectDarwin(ctx, info)
	}

	if err != nil {
		return nil, err
	}

	d.logger.Debug().
		Str("system", info.System).
		Str("arch", info.Arch).
		Str("version", info.Version).
		Str("install_method", string(info.SystemInstallMethod)).
		Msg("Detected system information")

	return info, nil
}

// detectLinux fills in the distribution facts from os-release.
func (d *SystemDetector) detectLinux(info *domain.SystemInfo) error {
	distroInfo := d.linuxDistroInfo()

	if len(distroInfo) == 0 {
		return domain.NewInstallerErrorf(
			"Could not determine the distribution of Linux being used. This "+
				"indicates you may be missing /etc/os-release and "+
				"/usr/lib/os-release files. You may need to install through "+
				"another method. See %s for instructions.",
			installationDocsURL)
	}

	distroID := distroInfo["ID"]

	families := make([]string, 0, 4)
	if distroID != "" {
		families = append(families, distroID)
	}

	for _, family := range strings.Fields(distroInfo["ID_LIKE"]) {
		if !slices.Contains(families, family) {
			families = append(families, family)
		}
	}

	d.logger.Debug().Strs("families", families).Msg("Detected Linux families")

	method := defaultLinuxInstallMethod(families)
	if method == "" {
		sorted := slices.Clone(families)
		sort.Strings(sorted)

		return domain.NewInstallerErrorf(
			"The Review Board installer doesn't support installing on this "+
				"family of Linux (%s). Please contact support@beanbaginc.com "+
				"for assistance. You may need to install through another "+
				"method. See %s for instructions.",
			strings.Join(sorted, ", "), installationDocsURL)
	}

	fullName := distroInfo["PRETTY_NAME"]
	if fullName == "" {
		fullName = distroInfo["NAME"]
	}

	info.DistroID = distroID
	info.DistroName = distroInfo["NAME"]
	info.DistroFullName = fullName
	info.DistroFamilies = families
	info.Version = distroInfo["VERSION_ID"]
	info.SystemInstallMethod = method

	return nil
}

// detectDarwin fills in the macOS facts. Brew is required since it is
// the only supported way to install system packages on macOS.
func (d *SystemDetector) detectDarwin(ctx context.Context, info *domain.SystemInfo) error {
	version := macOSVersion(ctx)
	if version == "" {
		return domain.NewInstallerErrorf(
			"The system reports that this is macOS, but no macOS version was "+
				"found! This seems to be a system configuration issue. You "+
				"may need to install through another method. See %s for "+
				"instructions.",
			installationDocsURL)
	}

	prefix, err := brewPrefix(ctx)
	if err != nil {
		d.logger.Debug().Msg("Brew is not installed")

		return domain.NewInstallerErrorf(
			"The Review Board installer cannot install on macOS without Brew "+
				"(https://brew.sh). You may need to install through another "+
				"method. See %s for instructions.",
			installationDocsURL)
	}

	d.logger.Debug().Str("prefix", prefix).Msg("Brew is available")

	info.Paths["brew"] = prefix
	info.Version = version
	info.SystemInstallMethod = domain.MethodBrew

	return nil
}

// linuxDistroInfo parses the freedesktop.org os-release file.
//
// Values may carry matching single or double quotes, and quoted values
// may escape backslashes, dollar signs, quotes, and backquotes.
func (d *SystemDetector) linuxDistroInfo() map[string]string {
	paths := []string{
		"/etc/os-release",
		"/usr/lib/os-release",
	}

	if custom := os.Getenv("RBINSTALL_OS_RELEASE_FILE"); custom != "" {
		paths = []string{custom}
	}

	distroInfo := map[string]string{}

	for _, path := range paths {
		if !d.fileManager.FileExists(path) {
			continue
		}

		data, err := d.fileManager.ReadFile(path)
		if err != nil {
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			if m := osReleaseLineRe.FindStringSubmatch(line); m != nil {
				distroInfo[m[1]] = unescapeOSReleaseValue(stripMatchedQuotes(m[2]))
			}
		}

		break
	}

	return distroInfo
}

func (d *SystemDetector) findSystemPython() (string, error) {
	if pythonExe := os.Getenv("RBINSTALL_FORCE_SYSTEM_PYTHON_EXE"); pythonExe != "" {
		return pythonExe, nil
	}

	for _, name := range []string{"python3", "python"} {
		if pythonExe, err := exec.LookPath(name); err == nil {
			return pythonExe, nil
		}
	}

	return "", domain.NewInstallerErrorf(
		"Could not find a Python 3 interpreter on this system. Review Board "+
			"requires Python to run. You may need to install through another "+
			"method. See %s for instructions.",
		installationDocsURL)
}

func (d *SystemDetector) detectPythonVersion(
	ctx context.Context,
	pythonExe string,
) (domain.PythonVersion, error) {
	// #nosec G204 - the interpreter path comes from PATH lookup or an
	// explicit override.
	output, err := exec.CommandContext(ctx, pythonExe, "--version").CombinedOutput()
	if err != nil {
		return domain.PythonVersion{}, domain.NewInstallerErrorf(
			"Unable to determine the version of Python at %s: %s",
			pythonExe, err)
	}

	m := pythonVersionRe.FindStringSubmatch(string(output))
	if m == nil {
		return domain.PythonVersion{}, domain.NewInstallerErrorf(
			"Unable to determine the version of Python at %s: unexpected "+
				"version output %q",
			pythonExe, strings.TrimSpace(string(output)))
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	micro, _ := strconv.Atoi(m[3])

	return domain.PythonVersion{
		Major: major,
		Minor: minor,
		Micro: micro,
	}, nil
}

// defaultLinuxInstallMethod maps distribution families to the native
// package manager.
func defaultLinuxInstallMethod(families []string) domain.InstallMethod {
	switch {
	case slices.Contains(families, "debian"):
		return domain.MethodAPT
	case slices.Contains(families, "rhel"), slices.Contains(families, "fedora"):
		return domain.MethodYum
	case slices.Contains(families, "arch"):
		return domain.MethodPacman
	case slices.Contains(families, "opensuse"):
		return domain.MethodZypper
	}

	return ""
}

func systemName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	}

	return cases.Title(language.Und).String(goos)
}

// machineArch reports the architecture using uname -m vocabulary,
// matching how the package table spells architectures. macOS reports
// 64-bit ARM as "arm64" where Linux reports "aarch64".
func machineArch(system string) string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		if system == "Darwin" {
			return "arm64"
		}

		return "aarch64"
	case "386":
		return "i686"
	}

	return runtime.GOARCH
}

func stripMatchedQuotes(value string) string {
	if len(value) >= 2 {
		quote := value[0]

		if (quote == '"' || quote == '\'') && value[len(value)-1] == quote {
			return value[1 : len(value)-1]
		}
	}

	return value
}

func unescapeOSReleaseValue(value string) string {
	return osReleaseUnescapeRe.ReplaceAllString(value, "$1")
}

func macOSVersion(ctx context.Context) string {
	output, err := exec.CommandContext(ctx, "sw_vers", "-productVersion").Output()
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(output))
}

func brewPrefix(ctx context.Context) (string, error) {
	output, err := exec.CommandContext(ctx, "brew", "--prefix").Output()
	if err != nil {
		return "", fmt.Errorf("failed to locate brew: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}
