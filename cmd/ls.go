package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xmazu/envsample/internal/config"
	"github.com/xmazu/envsample/internal/tui"
	"github.com/xmazu/envsample/internal/workspace"
)

var lsCmd = &cobra.Command{
	Use:   "ls [directory]",
	Short: "List directories with env files and their template status",
	Long: `Discover every directory under the workspace (or the given directory) that
has source env files, and show whether its template is missing, out of
date, or in sync. Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	var stdout io.Writer = os.Stdout
	if cmd != nil {
		stdout = cmd.OutOrStdout()
	}

	var root string
	explicitDir := len(args) == 1
	if explicitDir {
		root = args[0]
	} else {
		wsRoot, err := workspace.FindRoot(".")
		if err != nil {
			return fmt.Errorf("detect workspace: %w", err)
		}
		if workspace.IsWorkspace(wsRoot) {
			root = wsRoot
		} else {
			root = "."
		}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	project, _, err := projectFor(root)
	if err != nil {
		return err
	}

	units, err := workspace.DiscoverUnits(root, project.Sources, project.Exclude)
	if err != nil {
		return fmt.Errorf("discover workspace: %w", err)
	}

	if !explicitDir && workspace.IsWorkspace(root) {
		fmt.Fprintln(stdout, tui.Header(fmt.Sprintf("Workspace: %s (%s)", root, workspace.DescribeMarker(root))))
	}

	if len(units) == 0 {
		fmt.Fprintln(stdout, tui.Muted("no env files found"))
		return nil
	}

	for _, unit := range units {
		fmt.Fprintf(stdout, "  %s\n", unitStatus(unit, project))
	}
	return nil
}

// unitStatus renders one listing row without touching anything on disk.
func unitStatus(unit workspace.Unit, project config.Project) string {
	label := filepath.Join(unit.Rel, project.Output)
	res, err := syncUnit(unit.Dir, project, false)
	if err != nil {
		return tui.Fail(fmt.Sprintf("%s: %v", unit.Rel, err))
	}
	switch {
	case res.Built:
		return tui.Alert(fmt.Sprintf("%s missing (%d keys to write)", label, len(res.Keys)))
	case res.Changed && len(res.Added) > 0:
		return tui.Alert(fmt.Sprintf("%s out of date (+%d keys)", label, len(res.Added)))
	case res.Changed:
		return tui.Alert(label + " out of date")
	case len(res.Unknown) > 0:
		return tui.Alert(fmt.Sprintf("%s in sync, %d stale key(s): %s", label, len(res.Unknown), tui.KeyList(res.Unknown)))
	default:
		return tui.OK(fmt.Sprintf("%s in sync (%d keys)", label, len(res.Keys)))
	}
}
