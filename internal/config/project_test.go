package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadProject(t *testing.T) {
	t.Run("defaults when no config file", func(t *testing.T) {
		tmpDir := t.TempDir()

		project, found, err := LoadProject(tmpDir)
		if err != nil {
			t.Fatalf("LoadProject() error = %v", err)
		}
		if found {
			t.Error("found = true, want false")
		}
		if project.Output != ".env.example" {
			t.Errorf("Output = %q, want .env.example", project.Output)
		}
		if !reflect.DeepEqual(project.Sources, []string{".env", ".env.local"}) {
			t.Errorf("Sources = %v, want default pair", project.Sources)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		tmpDir := t.TempDir()
		in := Project{
			Output:   "sample.env",
			Sources:  []string{".env", ".env.staging"},
			Exclude:  []string{"apps/legacy/**"},
			Identity: "/keys/identity.txt",
		}
		if err := WriteProject(tmpDir, in); err != nil {
			t.Fatalf("WriteProject() error = %v", err)
		}

		got, found, err := LoadProject(tmpDir)
		if err != nil {
			t.Fatalf("LoadProject() error = %v", err)
		}
		if !found {
			t.Fatal("found = false, want true")
		}
		if !reflect.DeepEqual(got, in) {
			t.Errorf("LoadProject() = %+v, want %+v", got, in)
		}
	})

	t.Run("partial config fills defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := "exclude:\n  - vendor/**\n"
		if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		project, found, err := LoadProject(tmpDir)
		if err != nil {
			t.Fatalf("LoadProject() error = %v", err)
		}
		if !found {
			t.Fatal("found = false, want true")
		}
		if project.Output != ".env.example" {
			t.Errorf("Output = %q, want default", project.Output)
		}
		if !reflect.DeepEqual(project.Sources, []string{".env", ".env.local"}) {
			t.Errorf("Sources = %v, want default pair", project.Sources)
		}
		if !reflect.DeepEqual(project.Exclude, []string{"vendor/**"}) {
			t.Errorf("Exclude = %v, want [vendor/**]", project.Exclude)
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("output: [broken"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, _, err := LoadProject(tmpDir); err == nil {
			t.Error("LoadProject() error = nil, want parse error")
		}
	})
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists() = true before write")
	}
	if err := WriteProject(tmpDir, DefaultProject()); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}
	if !Exists(tmpDir) {
		t.Error("Exists() = false after write")
	}
}
