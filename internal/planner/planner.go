// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package planner turns the package candidate table into an ordered
// installation plan for one target system.
//
// Planning is a single left-to-right pass over the candidate lists. It
// is pure: all state (flags, package buckets) is local to one call, so
// the planner can run repeatedly and concurrently over the shared
// read-only table.
package planner

import (
	"fmt"

	"github.com/reviewboard/rbinstall/internal/catalog"
	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/versions"
)

// Categories lists every feature category in evaluation order. The
// order is load-bearing: flags set while evaluating an earlier category
// are visible to later ones within the same package-type pass.
var Categories = []string{ //nolint:gochecknoglobals
	"common",
	"cvs",
	"django-storages",
	"git",
	"memcached",
	"mercurial",
	"mysql",
	"perforce",
	"postgres",
	"subversion",
	"saml",
}

// bucketKey groups accepted packages into one installation step. Fail-
// tolerant candidates key on their own index so their packages never
// merge with a bucket whose failure would be fatal.
type bucketKey struct {
	method domain.InstallMethod
	block  int
}

// PlanPackages evaluates the candidate table for one package type
// across the given categories, in order, and returns the resulting
// steps: first one shell step per setup command, then one step per
// package bucket in creation order.
func PlanPackages(state *domain.InstallState, categories []string, packageType, description string) []*domain.InstallStep {
	return planPackagesFrom(catalog.Packages, state, categories,
		packageType, description)
}

// planPackagesFrom is PlanPackages over an explicit candidate table.
func planPackagesFrom(table map[string]catalog.Bundle, state *domain.InstallState, categories []string, packageType, description string) []*domain.InstallStep {
	var (
		setupCommands [][]string
		bucketOrder   []bucketKey
	)

	packages := map[bucketKey][]string{}
	packagesSet := map[bucketKey]map[string]bool{}
	allowFail := map[bucketKey]bool{}
	flags := map[string]bool{}

	systemInfo := state.SystemInfo
	systemMethod := systemInfo.SystemInstallMethod

	// Normalize the Review Board and distro versions once per pass.
	var rbVersion versions.Parsed
	if info := state.ReviewBoardVersionInfo; info != nil {
		rbVersion = versions.Parse(info.Version)
	}

	distroVersion := versions.Parse(systemInfo.Version)

	index := 0

	for _, category := range categories {
		for _, candidate := range table[category][packageType] {
			candidateIndex := index
			index++

			if !matches(candidate.Match, systemInfo, systemMethod,
				candidate.InstallMethod, distroVersion, rbVersion, flags) {
				continue
			}

			// This is a match. Record its contributions.
			setupCommands = append(setupCommands, candidate.Commands...)

			key := bucketKey{
				method: candidate.InstallMethod.Resolve(systemMethod),
				block:  -1,
			}
			if candidate.AllowFail {
				key.block = candidateIndex
			}

			if _, ok := packages[key]; !ok {
				packages[key] = nil
				packagesSet[key] = map[string]bool{}
				bucketOrder = append(bucketOrder, key)
			}

			allowFail[key] = candidate.AllowFail

			for flag, value := range candidate.SetFlags {
				if value {
					flags[flag] = true
				} else {
					delete(flags, flag)
				}
			}

			for _, pkg := range candidate.Packages {
				if !packagesSet[key][pkg] {
					packages[key] = append(packages[key], pkg)
					packagesSet[key][pkg] = true
				}
			}

			// Skipped packages were added by an earlier, broader
			// candidate and no longer apply. Absent entries are a
			// no-op.
			for _, pkg := range candidate.SkipPackages {
				if packagesSet[key][pkg] {
					packages[key] = removePackage(packages[key], pkg)
					delete(packagesSet[key], pkg)
				}
			}
		}
	}

	steps := make([]*domain.InstallStep, 0,
		len(setupCommands)+len(bucketOrder))

	for _, command := range setupCommands {
		steps = append(steps, &domain.InstallStep{
			InstallMethod: domain.MethodShell,
			Name:          "Setting up support for packages",
			State:         command,
		})
	}

	if description == "" {
		description = "Installing packages"
	}

	for _, key := range bucketOrder {
		steps = append(steps, &domain.InstallStep{
			InstallMethod: key.method,
			Name:          description,
			AllowFail:     allowFail[key],
			State:         packages[key],
		})
	}

	return steps
}

// matches checks every declared condition of a candidate against the
// target system. A nil match always applies.
func matches(match *domain.CandidateMatch, systemInfo *domain.SystemInfo,
	systemMethod, candidateMethod domain.InstallMethod,
	distroVersion, rbVersion versions.Parsed, flags map[string]bool,
) bool {
	// The install method has to be usable on this system whether or not
	// the candidate declares further conditions.
	method := candidateMethod.Resolve(systemMethod)
	if !method.UsableWith(systemMethod) {
		return false
	}

	if match == nil {
		return true
	}

	if match.Systems != nil && !match.Systems[systemInfo.System] {
		return false
	}

	if match.Archs != nil && !match.Archs[systemInfo.Arch] {
		return false
	}

	// At least one declared distro family has to match, but only when
	// both sides actually declare families.
	if len(match.DistroFamilies) > 0 && len(systemInfo.DistroFamilies) > 0 {
		found := false

		for _, family := range systemInfo.DistroFamilies {
			if match.DistroFamilies[family] {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	if systemInfo.DistroID != "" && match.DistroIDs != nil &&
		!match.DistroIDs[systemInfo.DistroID] {
		return false
	}

	if match.DistroVersion != nil && !match.DistroVersion(distroVersion) {
		return false
	}

	if match.RBVersion != nil && !match.RBVersion(rbVersion) {
		return false
	}

	for flag, required := range match.HasFlags {
		if flags[flag] != required {
			return false
		}
	}

	return true
}

func removePackage(packages []string, name string) []string {
	for i, pkg := range packages {
		if pkg == name {
			return append(packages[:i], packages[i+1:]...)
		}
	}

	return packages
}

// PlanVirtualenv returns the step that creates the Python virtual
// environment the product installs into.
func PlanVirtualenv(state *domain.InstallState) []*domain.InstallStep {
	systemInfo := state.SystemInfo

	return []*domain.InstallStep{
		{
			InstallMethod: domain.MethodShell,
			Name:          "Creating Python virtual environment",
			State: []string{
				systemInfo.BootstrapPythonExe,
				"-m",
				"virtualenv",
				"--download",
				"-p",
				systemInfo.SystemPythonExe,
				state.VenvPath,
			},
		},
	}
}

// PlanProductPackages returns the step installing the Review Board
// packages themselves, pinned to their resolved versions.
func PlanProductPackages(state *domain.InstallState) []*domain.InstallStep {
	var packages []string

	for _, entry := range []struct {
		name string
		info *domain.PackageVersionInfo
	}{
		{name: "ReviewBoard", info: state.ReviewBoardVersionInfo},
		{name: "ReviewBoardPowerPack", info: state.PowerPackVersionInfo},
		{name: "reviewbot-extension", info: state.ReviewBotExtensionVersionInfo},
		{name: "reviewbot-worker", info: state.ReviewBotWorkerVersionInfo},
	} {
		if entry.info != nil {
			packages = append(packages,
				fmt.Sprintf("%s==%s", entry.name, entry.info.Version))
		}
	}

	return []*domain.InstallStep{
		{
			InstallMethod: domain.MethodPip,
			Name:          "Installing Review Board packages",
			State:         packages,
		},
	}
}

// PlanInstall composes the full installation plan. The phase order is
// load-bearing: system packages come before the virtual environment
// they support, and the product packages are installed before any
// extras that depend on them.
func PlanInstall(state *domain.InstallState) []*domain.InstallStep {
	var steps []*domain.InstallStep

	steps = append(steps, PlanPackages(state, Categories,
		catalog.TypeSystem, "Installing system packages")...)
	steps = append(steps, PlanVirtualenv(state)...)
	steps = append(steps, PlanPackages(state, Categories,
		catalog.TypeVirtualenv, "Installing Python packaging support")...)
	steps = append(steps, PlanProductPackages(state)...)
	steps = append(steps, PlanPackages(state, Categories,
		catalog.TypeRBExtras, "Installing extra Review Board integrations")...)
	steps = append(steps, PlanPackages(state, Categories,
		catalog.TypeServiceIntegrations, "Installing service integrations")...)

	return steps
}
