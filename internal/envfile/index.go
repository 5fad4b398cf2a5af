package envfile

// KeyEntry is a key's first occurrence in a stream together with the
// contiguous blank/comment lines immediately above it.
type KeyEntry struct {
	Key            string
	CommentsBefore []string
}

// IndexKeys walks tokens once and returns one entry per distinct key plus
// the leftover blank/comment lines after the last key. First occurrence
// wins: a repeated key is dropped and does not claim the pending comments,
// which stay attached to the next new key instead. Keys compare byte-exact;
// no case folding or normalization is applied.
func IndexKeys(tokens []Token) (entries []KeyEntry, trailing []string) {
	seen := make(map[string]bool)
	var pending []string
	for _, tok := range tokens {
		if tok.Type != LineAssignment {
			pending = append(pending, tok.Raw)
			continue
		}
		if seen[tok.Key] {
			continue
		}
		seen[tok.Key] = true
		entries = append(entries, KeyEntry{Key: tok.Key, CommentsBefore: pending})
		pending = nil
	}
	return entries, pending
}

// MergeEntries returns primary's entries in order followed by the
// secondary entries whose keys primary does not declare, in secondary
// order. For keys in both, primary's attached comments win.
func MergeEntries(primary, secondary []KeyEntry) []KeyEntry {
	seen := make(map[string]bool, len(primary))
	merged := make([]KeyEntry, 0, len(primary)+len(secondary))
	for _, entry := range primary {
		seen[entry.Key] = true
		merged = append(merged, entry)
	}
	for _, entry := range secondary {
		if seen[entry.Key] {
			continue
		}
		seen[entry.Key] = true
		merged = append(merged, entry)
	}
	return merged
}

// MergeKeys indexes both streams and merges the results. The trailing
// blocks are returned separately, never merged; the caller decides which
// one, if any, to use.
func MergeKeys(primary, secondary []Token) (merged []KeyEntry, primaryTrailing, secondaryTrailing []string) {
	pe, pt := IndexKeys(primary)
	se, st := IndexKeys(secondary)
	return MergeEntries(pe, se), pt, st
}
