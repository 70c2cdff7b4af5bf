// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var invalidPathCharsRX = regexp.MustCompile(`[:/\\]+`)

// SanitizeFileName replaces path separators and colons so a kube context
// name can be used as a directory name.
func SanitizeFileName(name string) string {
	return invalidPathCharsRX.ReplaceAllString(name, "-")
}

// EnsureDirPath creates path if needed and returns it.
func EnsureDirPath(path string, perm os.FileMode) (string, error) {
	if err := os.MkdirAll(path, perm); err != nil {
		return "", fmt.Errorf("create directory %q: %w", path, err)
	}
	return path, nil
}

// EnsureFullPath creates the parent directories of path.
func EnsureFullPath(path string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), perm); err != nil {
		return fmt.Errorf("create parent of %q: %w", path, err)
	}
	return nil
}

// SaveYAML writes v to path as YAML.
func SaveYAML(path string, v any) error {
	if err := EnsureFullPath(path, 0o700); err != nil {
		return err
	}
	bb, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, bb, 0o600); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return nil
}

// LoadYAML reads path into v. The returned error wraps os.ErrNotExist when
// the file is missing.
func LoadYAML(path string, v any) error {
	bb, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(bb, v); err != nil {
		return fmt.Errorf("unmarshal yaml from %q: %w", path, err)
	}

	return nil
}

// LoadYAMLIfExists is LoadYAML that reports false, nil for a missing file.
func LoadYAMLIfExists(path string, v any) (bool, error) {
	err := LoadYAML(path, v)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
