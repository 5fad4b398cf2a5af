package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunLs(t *testing.T) {
	t.Run("reports in-sync and out-of-date units", func(t *testing.T) {
		isolate(t)
		tmp := t.TempDir()

		current := filepath.Join(tmp, "apps", "web")
		if err := os.MkdirAll(current, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(current, ".env"), []byte("A=1\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(current, ".env.example"), []byte("A=\n"), 0644); err != nil {
			t.Fatal(err)
		}

		stale := filepath.Join(tmp, "apps", "api")
		if err := os.MkdirAll(stale, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(stale, ".env"), []byte("A=1\nB=2\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd, buf := quietCommand()
		if err := runLs(cmd, []string{tmp}); err != nil {
			t.Fatalf("runLs() error = %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "apps/web/.env.example in sync") {
			t.Errorf("output missing in-sync row:\n%s", out)
		}
		if !strings.Contains(out, "apps/api/.env.example missing") {
			t.Errorf("output missing missing-template row:\n%s", out)
		}
	})

	t.Run("empty directory reports nothing found", func(t *testing.T) {
		isolate(t)
		tmp := t.TempDir()

		cmd, buf := quietCommand()
		if err := runLs(cmd, []string{tmp}); err != nil {
			t.Fatalf("runLs() error = %v", err)
		}
		if !strings.Contains(buf.String(), "no env files found") {
			t.Errorf("output = %q, want placeholder", buf.String())
		}
	})

	t.Run("invalid directory returns error", func(t *testing.T) {
		cmd, _ := quietCommand()
		if err := runLs(cmd, []string{"/nonexistent-path-12345"}); err == nil {
			t.Error("runLs() expected error for missing directory")
		}
	})
}
