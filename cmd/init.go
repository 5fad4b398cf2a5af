package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xmazu/envsample/internal/config"
	"github.com/xmazu/envsample/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a project config file",
	Long: `Write a ` + config.FileName + ` for the directory.

The config names the template file and the source env files, in precedence
order. It carries no secrets and is meant to be committed. With --yes the
conventional defaults are written without prompting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept the defaults without prompting")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
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

	if config.Exists(dir) {
		return fmt.Errorf("already initialized: %s exists in %s", config.FileName, dir)
	}

	project := config.DefaultProject()
	if !initYes {
		output, err := tui.Input("Template file", project.Output)
		if err != nil {
			return err
		}
		project.Output = output

		sources, err := tui.Input("Source files, highest precedence first", strings.Join(project.Sources, " "))
		if err != nil {
			return err
		}
		project.Sources = strings.Fields(sources)
	}

	if err := config.WriteProject(dir, project); err != nil {
		return fmt.Errorf("write %s: %w", config.FileName, err)
	}

	fmt.Fprintln(errOut, tui.OK("Created "+config.FileName))
	fmt.Fprintf(errOut, "%s Template %s will track %s\n", tui.Muted("•"), tui.Key(project.Output), tui.KeyList(project.Sources))
	fmt.Fprintf(errOut, "%s Run %s to build it, %s in CI\n", tui.Muted("Tip:"), tui.Label("envsample"), tui.Label("envsample --check"))
	return nil
}
