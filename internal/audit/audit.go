// Package audit keeps a tamper-evident record of template changes. Each
// entry carries the sha256 of the previous log line, so any edit to the
// history is detectable with Verify.
package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	auditDir  = ".envsample"
	auditFile = "audit.logl"
)

var (
	ErrNoAuditLog = errors.New("no audit log found")
	mu            sync.Mutex
)

type Op string

const (
	OpBuild Op = "build"
	OpPatch Op = "patch"
	OpCheck Op = "check"
)

type Entry struct {
	Timestamp time.Time `json:"ts"`
	RunID     string    `json:"run"`
	Op        Op        `json:"op"`
	Output    string    `json:"output,omitempty"`
	Added     []string  `json:"added,omitempty"`
	Flagged   []string  `json:"flagged,omitempty"`
	PrevHash  string    `json:"prev_hash"`
}

func auditPath(workdir string) string {
	if workdir == "" {
		workdir, _ = os.Getwd()
	}
	return filepath.Join(workdir, auditDir, auditFile)
}

func lastHash(workdir string) string {
	f, err := os.Open(auditPath(workdir))
	if err != nil {
		return ""
	}
	defer f.Close()

	var lastLine string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lastLine = scanner.Text()
	}
	if lastLine == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(lastLine))
	return hex.EncodeToString(hash[:])
}

// Log appends one entry for workdir's template. Each entry gets a fresh
// run id and links to its predecessor by hash.
func Log(workdir string, op Op, opts ...Option) error {
	mu.Lock()
	defer mu.Unlock()

	path := auditPath(workdir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ensure audit dir: %w", err)
	}

	entry := &Entry{
		Timestamp: time.Now().UTC(),
		RunID:     uuid.NewString(),
		Op:        op,
		PrevHash:  lastHash(workdir),
	}
	for _, opt := range opts {
		opt(entry)
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, string(b)); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

type Option func(*Entry)

func WithOutput(path string) Option {
	return func(e *Entry) {
		e.Output = path
	}
}

func WithAdded(keys []string) Option {
	return func(e *Entry) {
		e.Added = keys
	}
}

func WithFlagged(keys []string) Option {
	return func(e *Entry) {
		e.Flagged = keys
	}
}

// Entries returns the last n log entries for workdir, oldest first; n <= 0
// means all of them. Unparseable lines are skipped.
func Entries(workdir string, n int) ([]Entry, error) {
	f, err := os.Open(auditPath(workdir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoAuditLog
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	var entries []Entry
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

type VerifyResult struct {
	TotalEntries int
	Breaks       []int
}

// Verify re-walks the hash chain and reports the 1-based line numbers
// where it no longer holds.
func Verify(workdir string) (*VerifyResult, error) {
	f, err := os.Open(auditPath(workdir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoAuditLog
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	result := &VerifyResult{TotalEntries: len(lines)}
	if len(lines) == 0 {
		return result, nil
	}

	var first Entry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil || first.PrevHash != "" {
		result.Breaks = append(result.Breaks, 1)
	}

	for i := 1; i < len(lines); i++ {
		hash := sha256.Sum256([]byte(lines[i-1]))
		want := hex.EncodeToString(hash[:])

		var entry Entry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			result.Breaks = append(result.Breaks, i+1)
			continue
		}
		if entry.PrevHash != want {
			result.Breaks = append(result.Breaks, i+1)
		}
	}
	return result, nil
}
