package sample

import "github.com/xmazu/envsample/internal/envfile"

// Build renders a template from scratch: the file header, then one KEY=
// line per entry preceded by its attached comments, then the trailing
// footer. The first entry's comments are suppressed when they repeat the
// header line for line, which is the common case when the header was
// extracted from the same stream.
func Build(entries []envfile.KeyEntry, header, trailing []string) string {
	var lines []string
	lines = append(lines, header...)
	for i, entry := range entries {
		if i != 0 || !equalLines(entry.CommentsBefore, header) {
			lines = append(lines, entry.CommentsBefore...)
		}
		lines = append(lines, entry.Key+"=")
	}
	lines = append(lines, trailing...)
	return Content(lines)
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
