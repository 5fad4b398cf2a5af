// Package workspace locates the project root and the directories inside
// it that carry env source files.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// MarkerFiles identify a workspace root, checked in order.
var MarkerFiles = []string{
	"pnpm-workspace.yaml",
	"pnpm-lock.yaml",
	"turbo.json",
	"lerna.json",
	"go.work",
	"settings.gradle",
	"settings.gradle.kts",
	"gradlew",
	"gradlew.bat",
	".git",
}

// FindRoot walks up from dir to the nearest directory holding a marker
// file. Without any marker the starting directory itself is the root.
func FindRoot(dir string) (string, error) {
	original, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	dir = original

	for {
		for _, marker := range MarkerFiles {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return original, nil
		}
		dir = parent
	}
}

func IsWorkspace(dir string) bool {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for _, marker := range MarkerFiles {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// DescribeMarker names the marker that made root a workspace, in a form
// fit for display.
func DescribeMarker(root string) string {
	for _, marker := range MarkerFiles {
		if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
			if marker == ".git" {
				return "git repository"
			}
			return marker
		}
	}
	return "unknown"
}
