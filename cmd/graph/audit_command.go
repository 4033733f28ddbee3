package graph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

// NewAuditCommand creates the audit command
func NewAuditCommand(service relationship.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check every channel for inconsistent edges",
		Long: `Scan every channel and report edges whose two halves disagree, duplicate
entries, self references and IDs of channels that no longer exist.
With --repair the findings are fixed in place; run it while no other
writers are active.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repair, _ := cmd.Flags().GetBool("repair")
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}

			return runWithService(cmd, service, func(ctx context.Context, service relationship.Service) error {
				var report *relationship.Report
				var runErr error
				if repair {
					report, runErr = service.Repair(ctx)
				} else {
					report, runErr = service.Audit(ctx)
				}
				if report == nil {
					return fmt.Errorf("failed to audit channels: %w", runErr)
				}

				output, err := formatter.FormatReport(report)
				if err != nil {
					return err
				}
				write(cmd, output)

				if runErr != nil {
					return fmt.Errorf("failed to repair channels: %w", runErr)
				}
				if !repair && !report.Healthy() {
					return fmt.Errorf("%d violation(s) found, run 'followban audit --repair' to fix them", len(report.Violations))
				}
				return nil
			})
		},
	}

	cmd.Flags().Bool("repair", false, "Fix the violations found")
	addFormatFlag(cmd)
	return cmd
}
