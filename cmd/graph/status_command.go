package graph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// StoreChecker reports whether the configured store can be reached
type StoreChecker interface {
	CheckStore(ctx context.Context) (*StoreStatus, error)
}

// NewStatusCommand creates the status command. A nil checker connects through
// ServiceFactory.
func NewStatusCommand(checker StoreChecker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the configured store is reachable",
		Long: `Connect to the store selected in the configuration and report whether it
answered. Exits non-zero when the store is unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}

			storeChecker := checker
			if storeChecker == nil {
				storeChecker = NewServiceFactory()
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, cancel := context.WithTimeout(parent, commandTimeout)
			defer cancel()

			status, err := storeChecker.CheckStore(ctx)
			if err != nil {
				return err
			}

			output, err := formatter.FormatStatus(status)
			if err != nil {
				return err
			}
			write(cmd, output)

			if !status.Reachable {
				return fmt.Errorf("store %s is unreachable", status.Store)
			}
			return nil
		},
	}

	addFormatFlag(cmd)
	return cmd
}
