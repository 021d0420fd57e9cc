package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sdc_backend/internals/jobs"
)

func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "audit",
		Short:        "Recompute every work order's allocation and report invariant violations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.open()
			if err != nil {
				return err
			}
			report, err := jobs.RunLedgerAudit(cmd.Context(), db)
			if err != nil {
				return err
			}
			if err := renderAudit(cmd, rootOpts.Format, report); err != nil {
				return err
			}
			if n := len(report.Violations); n > 0 {
				return fmt.Errorf("%d work order(s) violate allocation invariants", n)
			}
			return nil
		},
	}
}

func renderAudit(cmd *cobra.Command, format string, report *jobs.AuditReport) error {
	w := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(w, report)
	}
	fmt.Fprintf(w, "checked %d work orders, %d violation(s)\n", report.Checked, len(report.Violations))
	if len(report.Violations) == 0 {
		return nil
	}
	t := newTable("WORK ORDER", "ID", "PROBLEM")
	for _, v := range report.Violations {
		t.Row(v.WorkOrderNumber, v.WorkOrderID.String(), v.Message)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
