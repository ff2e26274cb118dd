// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewboard/rbinstall/internal/catalog"
	"github.com/reviewboard/rbinstall/internal/domain"
)

// syntheticState returns a target the synthetic-table tests plan for.
// The real table's flag setters never match a live system, so the
// evaluation-order paths need candidates built for the test.
func syntheticState() *domain.InstallState {
	return &domain.InstallState{
		SystemInfo: &domain.SystemInfo{
			System:              "Linux",
			Arch:                "x86_64",
			DistroID:            "ubuntu",
			DistroFamilies:      []string{"ubuntu", "debian"},
			Version:             "22.04",
			SystemInstallMethod: domain.MethodAPT,
		},
	}
}

func TestPlanPackagesFlagVisibleOnlyAfterSetter(t *testing.T) {
	t.Parallel()

	table := map[string]catalog.Bundle{
		"tools": {
			catalog.TypeSystem: {
				// Consumes the flag before anything sets it.
				{
					Match: &domain.CandidateMatch{
						HasFlags: map[string]bool{"has_support": true},
					},
					Packages: []string{"too-early"},
				},

				// Sets the flag.
				{
					Packages: []string{"base"},
					SetFlags: map[string]bool{"has_support": true},
				},
			},
		},
		"integrations": {
			catalog.TypeSystem: {
				// Consumes the flag from a later category.
				{
					Match: &domain.CandidateMatch{
						HasFlags: map[string]bool{"has_support": true},
					},
					Packages: []string{"support-extra"},
				},
			},
		},
	}

	steps := planPackagesFrom(table, syntheticState(),
		[]string{"tools", "integrations"}, catalog.TypeSystem, "")

	require.Len(t, steps, 1)
	assert.Equal(t, domain.MethodAPT, steps[0].InstallMethod)
	assert.Equal(t, []string{"base", "support-extra"}, steps[0].State)
}

func TestPlanPackagesClearedFlagStopsLaterConsumers(t *testing.T) {
	t.Parallel()

	table := map[string]catalog.Bundle{
		"tools": {
			catalog.TypeSystem: {
				{
					Packages: []string{"base"},
					SetFlags: map[string]bool{"has_support": true},
				},
				{
					SetFlags: map[string]bool{"has_support": false},
				},
				{
					Match: &domain.CandidateMatch{
						HasFlags: map[string]bool{"has_support": true},
					},
					Packages: []string{"support-extra"},
				},
			},
		},
	}

	steps := planPackagesFrom(table, syntheticState(),
		[]string{"tools"}, catalog.TypeSystem, "")

	require.Len(t, steps, 1)
	assert.Equal(t, []string{"base"}, steps[0].State)
}

func TestPlanPackagesReAddAfterSkipYieldsOneEntry(t *testing.T) {
	t.Parallel()

	table := map[string]catalog.Bundle{
		"tools": {
			catalog.TypeSystem: {
				{
					Packages: []string{"p", "q"},
				},

				// A more specific candidate withdraws p and flags the
				// correction for later categories.
				{
					SkipPackages: []string{"p"},
					SetFlags:     map[string]bool{"needs_p": true},
				},
			},
		},
		"integrations": {
			catalog.TypeSystem: {
				{
					Match: &domain.CandidateMatch{
						HasFlags: map[string]bool{"needs_p": true},
					},
					Packages: []string{"p"},
				},
			},
		},
	}

	steps := planPackagesFrom(table, syntheticState(),
		[]string{"tools", "integrations"}, catalog.TypeSystem, "")

	require.Len(t, steps, 1)
	assert.Equal(t, []string{"q", "p"}, steps[0].State)
}

func TestPlanPackagesDuplicateAddKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	table := map[string]catalog.Bundle{
		"tools": {
			catalog.TypeSystem: {
				{
					Packages: []string{"p", "q"},
				},
				{
					Packages: []string{"p"},
				},
			},
		},
	}

	steps := planPackagesFrom(table, syntheticState(),
		[]string{"tools"}, catalog.TypeSystem, "")

	require.Len(t, steps, 1)
	assert.Equal(t, []string{"p", "q"}, steps[0].State)
}
