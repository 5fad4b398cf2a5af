// Package storage wraps typed YAML files behind a small load/save API.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type YAMLFile struct {
	path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (y *YAMLFile) Exists() bool {
	_, err := os.Stat(y.path)
	return err == nil
}

func (y *YAMLFile) Load(dest any) error {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", y.path)
		}
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func (y *YAMLFile) SaveWithPerm(data any, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(y.path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(y.path, out, perm); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
