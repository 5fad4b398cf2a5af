package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xmazu/envsample/internal/audit"
	"github.com/xmazu/envsample/internal/config"
	"github.com/xmazu/envsample/internal/syncer"
	"github.com/xmazu/envsample/internal/tui"
	"github.com/xmazu/envsample/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:           "envsample [directory]",
	Short:         "Keep .env.example in sync with your env files",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `EnvSample - keep a committed .env.example in step with the env files you don't commit.

Key names are copied, values never are: the template only ever contains KEY= lines.
Comments and ordering are preserved, new keys are appended under a dated header, and
template keys no source defines anymore get a warning comment.

EXAMPLES:

  envsample                  # sync ./.env.example from .env and .env.local
  envsample --check          # CI: fail when the template is out of date
  envsample --dry-run        # print the computed template, write nothing
  envsample --all            # sync every package in the workspace
  envsample watch            # resync on every save

Get started: envsample init`,
	RunE: runSync,
}

var (
	syncDryRun bool
	syncOutput string
	syncCheck  bool
	syncAll    bool
)

func init() {
	rootCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the computed template instead of writing it")
	rootCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "Template path, relative to the directory (default from config, else .env.example)")
	rootCmd.Flags().BoolVar(&syncCheck, "check", false, "Leave the template untouched; exit non-zero when it is out of date")
	rootCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every workspace directory that has source files")
	rootCmd.SetVersionTemplate("envsample version {{.Version}}\n")
}

// SetVersion sets the version string shown by --version (e.g. from ldflags).
func SetVersion(v string) { rootCmd.Version = v }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	if cmd != nil {
		out = cmd.OutOrStdout()
		errOut = cmd.ErrOrStderr()
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	project, configDir, err := projectFor(dir)
	if err != nil {
		return err
	}
	if syncOutput != "" {
		project.Output = syncOutput
	}

	if syncAll {
		root := configDir
		if len(args) == 1 {
			root = dir
		}
		return syncAllUnits(errOut, root, project)
	}

	res, err := syncUnit(dir, project, !syncDryRun && !syncCheck)
	if err != nil {
		if errors.Is(err, syncer.ErrNoSources) {
			return fmt.Errorf("%w in %s (looked for %s)", syncer.ErrNoSources, dir, strings.Join(project.Sources, ", "))
		}
		return err
	}

	if syncDryRun {
		fmt.Fprint(out, res.Content)
		reportWarnings(errOut, project.Output, res)
		return nil
	}
	if syncCheck {
		if err := audit.Log(dir, audit.OpCheck,
			audit.WithOutput(res.OutputPath),
			audit.WithAdded(res.Added),
			audit.WithFlagged(res.Unknown),
		); err != nil {
			warnRunLog(errOut, err)
		}
		reportWarnings(errOut, project.Output, res)
		if res.Changed {
			return fmt.Errorf("%s is out of date (run envsample to update it)", project.Output)
		}
		if len(res.Findings) > 0 {
			return fmt.Errorf("%s contains values that look like real secrets", project.Output)
		}
		fmt.Fprintln(errOut, tui.OK(project.Output+" is up to date"))
		return nil
	}

	if res.Changed {
		logRun(errOut, dir, res)
	}
	reportUnit(errOut, project.Output, res)
	return nil
}

// projectFor resolves the config governing dir: the directory's own
// config file wins, then the workspace root's, then the defaults.
func projectFor(dir string) (config.Project, string, error) {
	project, found, err := config.LoadProject(dir)
	if err != nil {
		return project, dir, err
	}
	if found {
		return project, dir, nil
	}
	if root, rootErr := workspace.FindRoot(dir); rootErr == nil && root != dir {
		if rootProject, rootFound, loadErr := config.LoadProject(root); loadErr == nil && rootFound {
			return rootProject, root, nil
		}
	}
	return project, dir, nil
}

// syncUnit runs the pipeline for one directory. With write set, a
// changed template is saved. Recording the run log stays with the
// caller, next to its terminal reporting.
func syncUnit(dir string, project config.Project, write bool) (*syncer.Result, error) {
	opts, err := syncer.ForProject(dir, project)
	if err != nil {
		return nil, err
	}
	res, err := syncer.Sync(opts)
	if err != nil {
		return nil, err
	}
	if write && res.Changed {
		if err := os.WriteFile(res.OutputPath, []byte(res.Content), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", res.OutputPath, err)
		}
	}
	return res, nil
}

// logRun records a completed write in the directory's run log. The sync
// itself already succeeded, so a log failure only warns.
func logRun(errOut io.Writer, dir string, res *syncer.Result) {
	op := audit.OpPatch
	if res.Built {
		op = audit.OpBuild
	}
	if err := audit.Log(dir, op,
		audit.WithOutput(res.OutputPath),
		audit.WithAdded(res.Added),
		audit.WithFlagged(res.Flagged),
	); err != nil {
		warnRunLog(errOut, err)
	}
}

func warnRunLog(w io.Writer, err error) {
	fmt.Fprintf(w, "%s could not write run log: %v\n", tui.Warning("Warning:"), err)
}

func syncAllUnits(errOut io.Writer, root string, project config.Project) error {
	units, err := workspace.DiscoverUnits(root, project.Sources, project.Exclude)
	if err != nil {
		return fmt.Errorf("discover workspace: %w", err)
	}
	if len(units) == 0 {
		return fmt.Errorf("no source files found under %s (looked for %s)", root, strings.Join(project.Sources, ", "))
	}

	write := !syncDryRun && !syncCheck
	results := make([]*syncer.Result, len(units))
	errs := make([]error, len(units))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, unit := range units {
		g.Go(func() error {
			results[i], errs[i] = syncUnit(unit.Dir, project, write)
			return nil
		})
	}
	_ = g.Wait()

	var failed, drifted, leaking int
	for i, unit := range units {
		label := filepath.Join(unit.Rel, project.Output)
		if errs[i] != nil {
			failed++
			fmt.Fprintf(errOut, "%s %s: %v\n", tui.Error("✗"), unit.Rel, errs[i])
			continue
		}
		res := results[i]
		if res.Changed {
			drifted++
		}
		if len(res.Findings) > 0 {
			leaking++
		}
		if syncCheck {
			if err := audit.Log(unit.Dir, audit.OpCheck,
				audit.WithOutput(res.OutputPath),
				audit.WithAdded(res.Added),
				audit.WithFlagged(res.Unknown),
			); err != nil {
				warnRunLog(errOut, err)
			}
			reportWarnings(errOut, label, res)
			continue
		}
		if syncDryRun {
			switch {
			case res.Built:
				fmt.Fprintln(errOut, tui.Alert(fmt.Sprintf("Would create %s with %d keys", label, len(res.Keys))))
			case res.Changed:
				fmt.Fprintln(errOut, tui.Alert(fmt.Sprintf("Would update %s (+%d keys)", label, len(res.Added))))
			default:
				fmt.Fprintln(errOut, tui.Skip(label+" up to date"))
			}
			reportWarnings(errOut, label, res)
			continue
		}
		if res.Changed {
			logRun(errOut, unit.Dir, res)
		}
		reportUnit(errOut, label, res)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d directories failed", failed, len(units))
	}
	if syncCheck {
		if drifted > 0 {
			return fmt.Errorf("%d of %d templates out of date (run envsample --all to update)", drifted, len(units))
		}
		if leaking > 0 {
			return fmt.Errorf("%d template(s) contain values that look like real secrets", leaking)
		}
		fmt.Fprintln(errOut, tui.OK(fmt.Sprintf("%d templates up to date", len(units))))
	}
	return nil
}

// reportUnit prints one status line for a synced unit plus any warnings.
func reportUnit(w io.Writer, label string, res *syncer.Result) {
	switch {
	case res.Built:
		fmt.Fprintf(w, "%s Created %s with %d keys\n", tui.Success("✓"), label, len(res.Keys))
	case res.Changed:
		fmt.Fprintln(w, tui.OK("Updated "+label))
	default:
		fmt.Fprintln(w, tui.Skip(label+" up to date"))
	}
	if len(res.Added) > 0 {
		fmt.Fprintf(w, "  %s %s\n", tui.Label("added:"), tui.KeyList(res.Added))
	}
	reportWarnings(w, label, res)
}

func reportWarnings(w io.Writer, label string, res *syncer.Result) {
	if len(res.Unknown) > 0 {
		fmt.Fprintln(w, tui.Alert(fmt.Sprintf("%d key(s) in %s missing from sources: %s", len(res.Unknown), label, tui.KeyList(res.Unknown))))
	}
	for _, f := range res.Findings {
		fmt.Fprintln(w, tui.Alert(fmt.Sprintf("%s line %d looks like a real secret ([%s] %s)", label, f.Line, strings.ToUpper(f.Pattern.Severity), f.Pattern.Name)))
	}
}
