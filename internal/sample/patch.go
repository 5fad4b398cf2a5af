package sample

import (
	"fmt"
	"time"

	"github.com/xmazu/envsample/internal/envfile"
)

// Patch appends the entries whose keys the template does not declare yet,
// under a single timestamped section header. Existing lines are never
// altered or reordered; with nothing missing the input comes back
// unchanged, which is what keeps the pipeline idempotent.
func Patch(lines []string, entries []envfile.KeyEntry, now time.Time) ([]string, []string) {
	have := make(map[string]bool)
	for _, line := range lines {
		if tok := envfile.Classify(line); tok.Type == envfile.LineAssignment {
			have[tok.Key] = true
		}
	}

	var missing []envfile.KeyEntry
	for _, entry := range entries {
		if !have[entry.Key] {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return lines, nil
	}

	out := append([]string{}, trimTrailingBlank(lines)...)
	out = append(out, fmt.Sprintf(sectionHeader, now.Format(timestampLayout)))

	added := make([]string, 0, len(missing))
	for _, entry := range missing {
		out = append(out, entry.CommentsBefore...)
		out = append(out, entry.Key+"=")
		added = append(added, entry.Key)
	}
	return out, added
}
