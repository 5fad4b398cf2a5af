package config

import (
	"fmt"
	"path/filepath"

	"github.com/xmazu/envsample/internal/storage"
)

// FileName is the per-project config file, committed next to the code.
const FileName = ".envsample.yaml"

// Project configures how a project's template is kept in sync. Every
// field is optional; zero values fall back to the conventional defaults.
type Project struct {
	// Output is the template path, relative to the project directory.
	Output string `yaml:"output,omitempty"`
	// Sources are the env files to read, highest precedence first.
	Sources []string `yaml:"sources,omitempty"`
	// Exclude holds doublestar globs of directories skipped during
	// workspace discovery.
	Exclude []string `yaml:"exclude,omitempty"`
	// Identity points at an age identity file for encrypted sources.
	Identity string `yaml:"identity,omitempty"`
}

func DefaultProject() Project {
	return Project{
		Output:  ".env.example",
		Sources: []string{".env", ".env.local"},
	}
}

// LoadProject reads dir's config file, filling unset fields from the
// defaults. The boolean reports whether a config file was found.
func LoadProject(dir string) (Project, bool, error) {
	file := storage.NewYAMLFile(filepath.Join(dir, FileName))
	project := DefaultProject()
	if !file.Exists() {
		return project, false, nil
	}

	var onDisk Project
	if err := file.Load(&onDisk); err != nil {
		return project, false, fmt.Errorf("load %s: %w", FileName, err)
	}
	if onDisk.Output != "" {
		project.Output = onDisk.Output
	}
	if len(onDisk.Sources) > 0 {
		project.Sources = onDisk.Sources
	}
	project.Exclude = onDisk.Exclude
	project.Identity = onDisk.Identity
	return project, true, nil
}

// WriteProject saves dir's config. The file carries no secrets and is
// meant to be committed, so it is world-readable.
func WriteProject(dir string, project Project) error {
	file := storage.NewYAMLFile(filepath.Join(dir, FileName))
	return file.SaveWithPerm(project, 0644)
}

func Exists(dir string) bool {
	return storage.NewYAMLFile(filepath.Join(dir, FileName)).Exists()
}
