package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

// commandTimeout bounds a single command, including store connection setup
const commandTimeout = 30 * time.Second

// NewCommands creates every channel graph command. A nil service makes each
// command build a real one through ServiceFactory when it runs.
func NewCommands(service relationship.Service) []*cobra.Command {
	commands := []*cobra.Command{
		NewChannelCommand(service),
		NewAuditCommand(service),
	}
	commands = append(commands, NewRelationCommands(service)...)
	commands = append(commands, NewCheckCommands(service)...)
	commands = append(commands, NewListCommands(service)...)
	return commands
}

// runWithService resolves the service for one command run and calls fn with it
func runWithService(cmd *cobra.Command, service relationship.Service, fn func(ctx context.Context, service relationship.Service) error) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()

	// Use provided service if available (for testing), otherwise create real service
	if service != nil {
		return fn(ctx, service)
	}

	factory := NewServiceFactory()
	realService, cleanup, err := factory.CreateService(ctx)
	if err != nil {
		return fmt.Errorf("failed to create relationship service: %w", err)
	}
	defer cleanup()

	return fn(ctx, realService)
}

// addFormatFlag registers the --format flag shared by every command
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "json", "Output format (json, text)")
}

func formatterFor(cmd *cobra.Command) (Formatter, error) {
	format, _ := cmd.Flags().GetString("format")
	return GetFormatter(format)
}

func write(cmd *cobra.Command, output string) {
	fmt.Fprintln(cmd.OutOrStdout(), output)
}
