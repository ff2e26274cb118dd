// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileManager implements the FileManager port for real file operations.
type FileManager struct{}

// NewFileManager creates a new file manager.
func NewFileManager() *FileManager {
	return &FileManager{}
}

// FileExists checks if a file exists.
func (f *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// EnsureDir creates a directory and all parent directories if they
// don't exist.
func (f *FileManager) EnsureDir(path string) error {
	// #nosec G301 - standard permissions for application directories.
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

// ReadFile reads the contents of a file.
func (f *FileManager) ReadFile(path string) ([]byte, error) {
	// #nosec G304 - file paths come from trusted application code.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// WriteFile writes data to a file, creating parent directories as
// needed.
func (f *FileManager) WriteFile(path string, data []byte) error {
	if err := f.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	// #nosec G306 - standard permissions for configuration files.
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ListDir returns the names of the entries in a directory.
func (f *FileManager) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}

	return names, nil
}

// MockFileManager implements the FileManager port for testing.
type MockFileManager struct {
	files map[string][]byte
}

// NewMockFileManager creates a new mock file manager for testing.
func NewMockFileManager() *MockFileManager {
	return &MockFileManager{
		files: make(map[string][]byte),
	}
}

// SetMockFile sets the content of a mock file.
func (f *MockFileManager) SetMockFile(path string, content []byte) {
	f.files[path] = content
}

// FileExists checks if a mock file or a directory holding one exists.
func (f *MockFileManager) FileExists(path string) bool {
	if _, exists := f.files[path]; exists {
		return true
	}

	prefix := strings.TrimSuffix(path, "/") + "/"

	for file := range f.files {
		if strings.HasPrefix(file, prefix) {
			return true
		}
	}

	return false
}

// EnsureDir does nothing in mock mode.
func (f *MockFileManager) EnsureDir(_ string) error {
	return nil
}

// ReadFile reads from a mock file.
func (f *MockFileManager) ReadFile(path string) ([]byte, error) {
	content, exists := f.files[path]
	if !exists {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}

	return content, nil
}

// WriteFile writes to a mock file.
func (f *MockFileManager) WriteFile(path string, data []byte) error {
	f.files[path] = data

	return nil
}

// ListDir lists the mock files directly under a directory.
func (f *MockFileManager) ListDir(path string) ([]string, error) {
	prefix := strings.TrimSuffix(path, "/") + "/"
	seen := make(map[string]bool)

	var names []string

	for file := range f.files {
		if !strings.HasPrefix(file, prefix) {
			continue
		}

		name, _, _ := strings.Cut(strings.TrimPrefix(file, prefix), "/")
		if !seen[name] {
			seen[name] = true

			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}

	sort.Strings(names)

	return names, nil
}
