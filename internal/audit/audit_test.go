package audit

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestLog(t *testing.T) {
	tmp := t.TempDir()

	err := Log(tmp, OpBuild, WithOutput(".env.example"), WithAdded([]string{"API_KEY"}))
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	if _, err := os.Stat(auditPath(tmp)); err != nil {
		t.Fatalf("audit file not created: %v", err)
	}

	entries, err := Entries(tmp, 10)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries count = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Op != OpBuild {
		t.Errorf("op = %q, want %q", e.Op, OpBuild)
	}
	if e.Output != ".env.example" {
		t.Errorf("output = %q, want .env.example", e.Output)
	}
	if !reflect.DeepEqual(e.Added, []string{"API_KEY"}) {
		t.Errorf("added = %v, want [API_KEY]", e.Added)
	}
	if e.RunID == "" {
		t.Error("run id should be set")
	}
}

func TestLog_MultipleEntries(t *testing.T) {
	tmp := t.TempDir()

	for i := 0; i < 5; i++ {
		if err := Log(tmp, OpPatch, WithAdded([]string{"KEY"})); err != nil {
			t.Fatalf("Log %d failed: %v", i, err)
		}
	}

	entries, err := Entries(tmp, 0)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("entries count = %d, want 5", len(entries))
	}

	runIDs := make(map[string]bool)
	for _, e := range entries {
		runIDs[e.RunID] = true
	}
	if len(runIDs) != 5 {
		t.Errorf("run ids = %d distinct, want 5", len(runIDs))
	}
}

func TestEntries_Limit(t *testing.T) {
	tmp := t.TempDir()

	ops := []Op{OpBuild, OpPatch, OpCheck}
	for _, op := range ops {
		if err := Log(tmp, op); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	entries, err := Entries(tmp, 2)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries count = %d, want 2", len(entries))
	}
	if entries[0].Op != OpPatch || entries[1].Op != OpCheck {
		t.Errorf("entries = %v, %v, want the last two ops", entries[0].Op, entries[1].Op)
	}
}

func TestEntries_NoLog(t *testing.T) {
	_, err := Entries(t.TempDir(), 0)
	if !errors.Is(err, ErrNoAuditLog) {
		t.Errorf("Entries() error = %v, want ErrNoAuditLog", err)
	}
}

func TestVerify(t *testing.T) {
	t.Run("intact chain", func(t *testing.T) {
		tmp := t.TempDir()
		for i := 0; i < 3; i++ {
			if err := Log(tmp, OpPatch, WithAdded([]string{"K"})); err != nil {
				t.Fatalf("Log failed: %v", err)
			}
		}

		result, err := Verify(tmp)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if result.TotalEntries != 3 {
			t.Errorf("total = %d, want 3", result.TotalEntries)
		}
		if len(result.Breaks) != 0 {
			t.Errorf("breaks = %v, want none", result.Breaks)
		}
	})

	t.Run("tampered line detected", func(t *testing.T) {
		tmp := t.TempDir()
		for i := 0; i < 3; i++ {
			if err := Log(tmp, OpPatch); err != nil {
				t.Fatalf("Log failed: %v", err)
			}
		}

		path := auditPath(tmp)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		lines[1] = strings.Replace(lines[1], `"op":"patch"`, `"op":"build"`, 1)
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		result, err := Verify(tmp)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		// Line 2 changed, so line 3's prev-hash no longer matches.
		if len(result.Breaks) == 0 {
			t.Fatal("tampering not detected")
		}
		if result.Breaks[0] != 3 {
			t.Errorf("first break = %d, want 3", result.Breaks[0])
		}
	})

	t.Run("missing log", func(t *testing.T) {
		if _, err := Verify(t.TempDir()); !errors.Is(err, ErrNoAuditLog) {
			t.Errorf("Verify() error = %v, want ErrNoAuditLog", err)
		}
	})
}
