// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package domain_test

import (
	"testing"

	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInstallMethodResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.MethodAPT,
		domain.MethodSystemDefault.Resolve(domain.MethodAPT))
	assert.Equal(t, domain.MethodAPT,
		domain.InstallMethod("").Resolve(domain.MethodAPT))
	assert.Equal(t, domain.MethodBrew,
		domain.MethodBrew.Resolve(domain.MethodAPT))
}

func TestInstallMethodUsableWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		method       domain.InstallMethod
		systemMethod domain.InstallMethod
		expected     bool
	}{
		{
			name:         "native method on its own system",
			method:       domain.MethodAPT,
			systemMethod: domain.MethodAPT,
			expected:     true,
		},
		{
			name:         "foreign package manager",
			method:       domain.MethodYum,
			systemMethod: domain.MethodAPT,
			expected:     false,
		},
		{
			name:         "pip works everywhere",
			method:       domain.MethodPip,
			systemMethod: domain.MethodZypper,
			expected:     true,
		},
		{
			name:         "shell works everywhere",
			method:       domain.MethodShell,
			systemMethod: domain.MethodPacman,
			expected:     true,
		},
		{
			name:         "remote script works everywhere",
			method:       domain.MethodRemotePyscript,
			systemMethod: domain.MethodBrew,
			expected:     true,
		},
		{
			name:         "product extras work everywhere",
			method:       domain.MethodReviewBoardExtra,
			systemMethod: domain.MethodYum,
			expected:     true,
		},
		{
			name:         "brew on a yum system",
			method:       domain.MethodBrew,
			systemMethod: domain.MethodYum,
			expected:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected,
				tc.method.UsableWith(tc.systemMethod))
		})
	}
}

func TestHasDistroFamily(t *testing.T) {
	t.Parallel()

	info := &domain.SystemInfo{
		DistroFamilies: []string{"ubuntu", "debian"},
	}

	assert.True(t, info.HasDistroFamily("debian"))
	assert.False(t, info.HasDistroFamily("rhel"))
}
