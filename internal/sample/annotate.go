package sample

import "github.com/xmazu/envsample/internal/envfile"

// Annotate inserts note directly above every assignment whose key is not
// in known, leaving all other lines untouched and in position. Only lines
// that classify as assignments count; a commented-out assignment passes
// through. An assignment whose nearest preceding non-blank line already
// carries a warning is skipped, so repeated runs insert nothing new.
// Returns the annotated lines and the keys flagged this pass.
func Annotate(lines []string, known map[string]bool, note string) ([]string, []string) {
	var out []string
	var flagged []string
	for _, line := range lines {
		if tok := envfile.Classify(line); tok.Type == envfile.LineAssignment && !known[tok.Key] {
			if !isNote(lastNonBlank(out)) {
				out = append(out, note)
				flagged = append(flagged, tok.Key)
			}
		}
		out = append(out, line)
	}
	return out, flagged
}
