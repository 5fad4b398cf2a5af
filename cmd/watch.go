package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xmazu/envsample/internal/source"
	"github.com/xmazu/envsample/internal/tui"
	"github.com/xmazu/envsample/internal/watch"
	"github.com/xmazu/envsample/internal/workspace"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Resync templates whenever a source file is saved",
	Long: `Sync once, then keep watching the source env files and resync on every
change. Saves from editors that replace the file are detected, and a
source created after the watch started is picked up too. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var watchAll bool

func init() {
	watchCmd.Flags().BoolVar(&watchAll, "all", false, "Watch every workspace directory that has source files")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var errOut io.Writer = os.Stderr
	if cmd != nil {
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

	project, configDir, err := projectFor(dir)
	if err != nil {
		return err
	}

	var units []workspace.Unit
	if watchAll {
		root := configDir
		if len(args) == 1 {
			root = dir
		}
		units, err = workspace.DiscoverUnits(root, project.Sources, project.Exclude)
		if err != nil {
			return fmt.Errorf("discover workspace: %w", err)
		}
		if len(units) == 0 {
			return fmt.Errorf("no source files found under %s (looked for %s)", root, strings.Join(project.Sources, ", "))
		}
	} else {
		units = []workspace.Unit{{Dir: dir, Rel: "."}}
	}

	resync := func() {
		for _, unit := range units {
			label := filepath.Join(unit.Rel, project.Output)
			res, err := syncUnit(unit.Dir, project, true)
			if err != nil {
				fmt.Fprintln(errOut, tui.Fail(fmt.Sprintf("%s: %v", unit.Rel, err)))
				continue
			}
			if res.Changed {
				logRun(errOut, unit.Dir, res)
				reportUnit(errOut, label, res)
			} else {
				reportWarnings(errOut, label, res)
			}
		}
	}
	resync()

	w, err := watch.New()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	watched := 0
	for _, unit := range units {
		for _, name := range project.Sources {
			path, _ := source.Resolve(unit.Dir, name)
			if err := w.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			watched++
		}
	}
	fmt.Fprintln(errOut, tui.Skip(fmt.Sprintf("watching %d file(s), Ctrl+C to stop", watched)))

	changes := w.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			fmt.Fprintln(errOut, tui.Muted("stopping"))
			return nil
		case <-changes:
			resync()
		}
	}
}
