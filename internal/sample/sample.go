// Package sample renders and patches the keys-only template file kept
// alongside real env files. Everything here is pure string work; reading
// and writing the template belongs to the caller.
package sample

import "strings"

const (
	// NotePrefix starts every unknown-key warning. The annotator's guard
	// matches on the prefix, so annotations written under an earlier
	// source configuration are still recognized.
	NotePrefix = "# NOTE: Key not found in "

	sectionHeader   = "# --- Added by envsample on %s ---"
	timestampLayout = "2006-01-02 15:04:05"
)

// Note builds the warning line for the given source display names.
func Note(sources []string) string {
	switch len(sources) {
	case 0:
		return NotePrefix + "sources"
	case 1:
		return NotePrefix + sources[0]
	}
	return NotePrefix + strings.Join(sources[:len(sources)-1], ", ") + " or " + sources[len(sources)-1]
}

// Content joins lines into final file content: trailing blank lines are
// dropped and the result ends with exactly one newline. No lines at all
// produce empty content.
func Content(lines []string) string {
	lines = trimTrailingBlank(lines)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

func isNote(line string) bool {
	return strings.HasPrefix(line, NotePrefix)
}

func lastNonBlank(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}
