// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package testutil provides shared mocks and fixtures for the port
// interfaces, for use in tests across multiple packages.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/reviewboard/rbinstall/internal/domain"
)

// MockSystemDetector is a mock implementation of the SystemDetector
// port.
type MockSystemDetector struct {
	mock.Mock
}

// DetectSystem mocks the system detection.
func (m *MockSystemDetector) DetectSystem(ctx context.Context) (*domain.SystemInfo, error) {
	args := m.Called(ctx)
	if info, ok := args.Get(0).(*domain.SystemInfo); ok {
		return info, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockPackageIndex is a mock implementation of the PackageIndex port.
type MockPackageIndex struct {
	mock.Mock
}

// LookupVersion mocks a package version lookup.
func (m *MockPackageIndex) LookupVersion(ctx context.Context, packageName, targetVersion string, pythonVersion domain.PythonVersion) (*domain.PackageVersionInfo, error) {
	args := m.Called(ctx, packageName, targetVersion, pythonVersion)
	if info, ok := args.Get(0).(*domain.PackageVersionInfo); ok {
		return info, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockScriptDownloader is a mock implementation of the ScriptDownloader
// port.
type MockScriptDownloader struct {
	mock.Mock
}

// Download mocks fetching a remote script.
func (m *MockScriptDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}

	return nil, args.Error(1)
}

// UbuntuSystemInfo returns the facts for a typical Ubuntu 22.04 host.
func UbuntuSystemInfo() *domain.SystemInfo {
	return &domain.SystemInfo{
		System:              "Linux",
		Arch:                "x86_64",
		DistroID:            "ubuntu",
		DistroName:          "Ubuntu",
		DistroFullName:      "Ubuntu 22.04.4 LTS",
		DistroFamilies:      []string{"ubuntu", "debian"},
		Version:             "22.04",
		SystemInstallMethod: domain.MethodAPT,
		SystemPythonExe:     "/usr/bin/python3",
		SystemPythonVersion: domain.PythonVersion{Major: 3, Minor: 11, Micro: 4},
		BootstrapPythonExe:  "/usr/bin/python3",
		Paths:               map[string]string{},
	}
}

// PackageVersion returns resolved version information for a package at
// its latest release.
func PackageVersion(name, version string) *domain.PackageVersionInfo {
	return &domain.PackageVersionInfo{
		IsLatest:       true,
		IsRequested:    false,
		LatestVersion:  version,
		PackageName:    name,
		RequiresPython: ">=3.8",
		Version:        version,
	}
}
