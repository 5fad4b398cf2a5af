// Package syncer runs the template pipeline for one directory: read the
// configured sources, merge their keys, then build the template from
// scratch or annotate-and-patch the existing one. Sync computes content
// only; writing the result and recording audit entries stay with the
// caller.
package syncer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"filippo.io/age"

	"github.com/xmazu/envsample/internal/config"
	"github.com/xmazu/envsample/internal/envfile"
	"github.com/xmazu/envsample/internal/sample"
	"github.com/xmazu/envsample/internal/scanner"
	"github.com/xmazu/envsample/internal/source"
)

// ErrNoSources reports that none of the configured source files exist in
// the directory, in either plain or encrypted form.
var ErrNoSources = errors.New("no source files found")

// Options configures one Sync run.
type Options struct {
	// Dir is the directory holding the sources and the template.
	Dir string

	// SourceNames are the env files to read, highest precedence first.
	// The first name is the primary source; its leading comment block
	// becomes the template header on a fresh build.
	SourceNames []string

	// Output is the template file name, relative to Dir.
	Output string

	// Identities decrypt .age sources. Unused when all sources are
	// plaintext.
	Identities []age.Identity

	// Now supplies the timestamp for appended section headers. Nil
	// means time.Now.
	Now func() time.Time
}

// Result describes what a Sync run computed. Nothing has been written
// to disk; Content is what the template should contain.
type Result struct {
	// OutputPath is the resolved template path.
	OutputPath string

	// Content is the computed template text.
	Content string

	// Previous is the template text found on disk, empty when the file
	// did not exist.
	Previous string

	// Built is true when the template did not exist and Content was
	// rendered from scratch.
	Built bool

	// Changed is true when the on-disk template needs (re)writing,
	// either because it is missing or because Content differs.
	Changed bool

	// Added lists keys appended by this run, in output order.
	Added []string

	// Flagged lists keys that received an unknown-key warning this run.
	Flagged []string

	// Unknown lists every template key absent from all sources,
	// including ones flagged on earlier runs.
	Unknown []string

	// Findings are template lines that look like real secrets.
	Findings []scanner.Finding

	// Keys is the merged key list from the sources, first-seen order.
	Keys []string
}

// ForProject builds Options for dir from its project config, gathering
// whatever age identities are available. A relative identity path is
// taken relative to dir.
func ForProject(dir string, project config.Project) (Options, error) {
	identity := project.Identity
	if identity != "" && !filepath.IsAbs(identity) {
		identity = filepath.Join(dir, identity)
	}
	ids, err := source.Identities(identity)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Dir:         dir,
		SourceNames: project.Sources,
		Output:      project.Output,
		Identities:  ids,
	}, nil
}

// Sync reconciles the directory's template with its source files. A
// configured source that is missing on disk contributes nothing; if all
// of them are missing the run fails with ErrNoSources.
func Sync(opts Options) (*Result, error) {
	if len(opts.SourceNames) == 0 {
		return nil, ErrNoSources
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var (
		entries  []envfile.KeyEntry
		trailing []string
		header   []string
		present  int
	)
	known := make(map[string]bool)
	for i, name := range opts.SourceNames {
		path, _ := source.Resolve(opts.Dir, name)
		text, ok, err := source.Read(path, opts.Identities)
		if err != nil {
			return nil, err
		}
		if ok {
			present++
		}
		tokens := envfile.Tokenize(text)
		for key := range envfile.KeySet(tokens) {
			known[key] = true
		}
		sourceEntries, sourceTrailing := envfile.IndexKeys(tokens)
		if len(sourceEntries) == 0 {
			// No assignments means no trailing block. The primary's
			// lines already form the header; a secondary's belong to
			// no key.
			sourceTrailing = nil
		}
		if i == 0 {
			header = envfile.LeadingBlock(tokens)
			entries, trailing = sourceEntries, sourceTrailing
			continue
		}
		entries = envfile.MergeEntries(entries, sourceEntries)
		if len(trailing) == 0 {
			trailing = sourceTrailing
		}
	}
	if present == 0 {
		return nil, ErrNoSources
	}

	keys := make([]string, len(entries))
	for i, entry := range entries {
		keys[i] = entry.Key
	}

	outPath := filepath.Join(opts.Dir, opts.Output)
	res := &Result{OutputPath: outPath, Keys: keys}

	prev, err := os.ReadFile(outPath)
	switch {
	case err == nil:
		res.Previous = string(prev)
	case errors.Is(err, fs.ErrNotExist):
		res.Built = true
	default:
		return nil, fmt.Errorf("failed to read %s: %w", outPath, err)
	}

	if res.Built {
		res.Content = sample.Build(entries, header, trailing)
	} else {
		lines := envfile.SplitLines(res.Previous)
		res.Unknown = unknownKeys(lines, known)

		note := sample.Note(opts.SourceNames)
		annotated, flagged := sample.Annotate(lines, known, note)
		patched, added := sample.Patch(annotated, entries, nowFn())
		res.Content = sample.Content(patched)
		res.Flagged = flagged
		res.Added = added
	}

	res.Changed = res.Built || res.Content != res.Previous
	res.Findings = scanner.Check(res.Content)
	return res, nil
}

// unknownKeys returns the distinct template keys not present in known,
// in template order. Commented-out assignments do not count as keys.
func unknownKeys(lines []string, known map[string]bool) []string {
	var unknown []string
	seen := make(map[string]bool)
	for _, line := range lines {
		tok := envfile.Classify(line)
		if tok.Type != envfile.LineAssignment || known[tok.Key] || seen[tok.Key] {
			continue
		}
		seen[tok.Key] = true
		unknown = append(unknown, tok.Key)
	}
	return unknown
}
