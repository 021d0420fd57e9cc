package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	burndownSvc "sdc_backend/internals/features/progress/burndown/service"
	allocationSvc "sdc_backend/internals/features/workorders/allocation/service"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func NewAllocationCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "allocation <work-order-id>",
		Short:        "Show allocated and remaining targets per job role",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid work order id: %w", err)
			}
			db, err := rootOpts.open()
			if err != nil {
				return err
			}
			snap, err := allocationSvc.ComputeAllocationStatus(cmd.Context(), db, id)
			if err != nil {
				return err
			}
			return renderAllocation(cmd.OutOrStdout(), rootOpts.Format, snap)
		},
	}
}

func renderAllocation(w io.Writer, format string, snap *allocationSvc.Snapshot) error {
	if format == "json" {
		return writeJSON(w, snap)
	}
	t := newTable("JOB ROLE", "TARGET", "ALLOCATED", "REMAINING", "SDCS")
	for _, jr := range snap.JobRoles {
		t.Row(jr.JobRoleCode, strconv.Itoa(jr.Target), strconv.Itoa(jr.Allocated), strconv.Itoa(jr.Remaining), strconv.Itoa(jr.SDCCount))
	}
	t.Row("TOTAL", strconv.Itoa(snap.TotalTarget), strconv.Itoa(snap.TotalAllocated), strconv.Itoa(snap.TotalRemaining), strconv.Itoa(snap.SDCsCreated))

	fmt.Fprintf(w, "%s (%s) fully allocated: %t\n", snap.WorkOrderNumber, snap.Status, snap.IsFullyAllocated)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func NewBurndownCommand(rootOpts *RootOptions) *cobra.Command {
	var workOrder string
	cmd := &cobra.Command{
		Use:          "burndown",
		Short:        "Show the student funnel across work orders",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var woID *uuid.UUID
			if workOrder != "" {
				id, err := uuid.Parse(workOrder)
				if err != nil {
					return fmt.Errorf("invalid work order id: %w", err)
				}
				woID = &id
			}
			db, err := rootOpts.open()
			if err != nil {
				return err
			}
			bd, err := burndownSvc.New(db).Burndown(cmd.Context(), woID)
			if err != nil {
				return err
			}
			return renderBurndown(cmd.OutOrStdout(), rootOpts.Format, bd)
		},
	}
	cmd.Flags().StringVar(&workOrder, "work-order", "", "limit to one work order id")
	return cmd
}

func funnelRow(label string, f burndownSvc.Funnel) []string {
	return []string{
		label,
		strconv.Itoa(f.SDCs),
		strconv.Itoa(f.Target),
		strconv.Itoa(f.Mobilized),
		strconv.Itoa(f.InTraining),
		strconv.Itoa(f.Assessed),
		strconv.Itoa(f.Placed),
		strconv.FormatFloat(f.CompletionPct, 'f', 2, 64) + "%",
	}
}

func renderBurndown(w io.Writer, format string, bd *burndownSvc.Burndown) error {
	if format == "json" {
		return writeJSON(w, bd)
	}
	t := newTable("WORK ORDER", "SDCS", "TARGET", "MOBILIZED", "TRAINING", "ASSESSED", "PLACED", "DONE")
	for _, wf := range bd.PerWorkOrder {
		t.Row(funnelRow(wf.WorkOrderNumber, wf.Funnel)...)
	}
	t.Row(funnelRow("OVERALL", bd.Overall)...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
