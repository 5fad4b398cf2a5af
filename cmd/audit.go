package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmazu/envsample/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View and verify the run log",
	Long: `View the run log and verify chain integrity.

Every build, patch and check of a template is recorded. Each entry links
to the previous one by hash, forming a tamper-evident chain.`,
}

var auditShowCmd = &cobra.Command{
	Use:   "show [--last=N]",
	Short: "Show recent runs",
	Long: `Display recent run log entries.

Shows the operation, timestamp, template path, and the keys added or
flagged by that run.`,
	RunE: runAuditShow,
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify run log chain integrity",
	Long: `Verify that the run log chain is intact.

Checks that each entry's prev_hash matches the hash of the previous entry.
Reports any breaks in the chain.`,
	RunE: runAuditVerify,
}

var (
	auditLastN   int
	auditWorkdir string
)

func init() {
	auditShowCmd.Flags().IntVarP(&auditLastN, "last", "n", 10, "Number of entries to show")
	auditShowCmd.Flags().StringVarP(&auditWorkdir, "workdir", "w", "", "Working directory (default: current)")

	auditVerifyCmd.Flags().StringVarP(&auditWorkdir, "workdir", "w", "", "Working directory (default: current)")

	auditCmd.AddCommand(auditShowCmd)
	auditCmd.AddCommand(auditVerifyCmd)

	rootCmd.AddCommand(auditCmd)
}

func runAuditShow(cmd *cobra.Command, args []string) error {
	entries, err := audit.Entries(auditWorkdir, auditLastN)
	if err != nil {
		if err == audit.ErrNoAuditLog {
			fmt.Println("No run log found. Runs are recorded once envsample writes or checks a template here.")
			return nil
		}
		return fmt.Errorf("read run log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No entries in run log.")
		return nil
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))

	return nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result, err := audit.Verify(auditWorkdir)
	if err != nil {
		if err == audit.ErrNoAuditLog {
			fmt.Println("No run log found.")
			return nil
		}
		return fmt.Errorf("verify run log: %w", err)
	}

	fmt.Printf("Run log verified: %d entries\n", result.TotalEntries)

	if len(result.Breaks) == 0 {
		fmt.Println("Chain integrity: OK")
		return nil
	}

	fmt.Printf("Chain breaks detected at lines: %v\n", result.Breaks)
	fmt.Println("Warning: Log may have been tampered with.")
	return nil
}
