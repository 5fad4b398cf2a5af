package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xmazu/envsample/internal/source"
)

var DefaultExcludeDirs = []string{
	".git",
	"node_modules",
	"vendor",
	".cache",
	".turbo",
	".next",
}

// Unit is one directory synced independently: its absolute path, the
// root-relative display path, and the source files resolved in it.
type Unit struct {
	Dir   string
	Rel   string
	Files []string
}

// DiscoverUnits walks root and returns a unit for every directory where
// at least one of the configured source names resolves, plain or
// age-encrypted. Well-known dependency and build directories are
// skipped, as is any directory whose root-relative path matches an
// exclude glob. The walk deliberately ignores .gitignore: source env
// files are conventionally gitignored, and they are exactly what this
// walk is looking for.
func DiscoverUnits(root string, names, exclude []string) ([]Unit, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	excludeSet := make(map[string]bool)
	for _, d := range DefaultExcludeDirs {
		excludeSet[d] = true
	}

	var units []Unit
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if rel != "." && (excludeSet[d.Name()] || matchesExclude(rel, exclude)) {
			return filepath.SkipDir
		}

		var files []string
		for _, name := range names {
			if resolved, ok := source.Resolve(path, name); ok {
				files = append(files, resolved)
			}
		}
		if len(files) > 0 {
			units = append(units, Unit{Dir: path, Rel: rel, Files: files})
		}
		return nil
	})
	return units, err
}

func matchesExclude(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		// "apps/legacy/**" skips apps/legacy itself, not just its contents.
		if base, found := strings.CutSuffix(pattern, "/**"); found && rel == base {
			return true
		}
	}
	return false
}
