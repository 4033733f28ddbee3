package graph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

// NewListCommands creates the followers, following, banned and banned-from commands
func NewListCommands(service relationship.Service) []*cobra.Command {
	lists := []struct {
		use   string
		short string
		query func(relationship.Service) func(context.Context, string) ([]*model.Channel, error)
	}{
		{
			use:   "followers [USERNAME]",
			short: "List the channels following USERNAME",
			query: func(s relationship.Service) func(context.Context, string) ([]*model.Channel, error) { return s.Followers },
		},
		{
			use:   "following [USERNAME]",
			short: "List the channels USERNAME follows",
			query: func(s relationship.Service) func(context.Context, string) ([]*model.Channel, error) { return s.Following },
		},
		{
			use:   "banned [USERNAME]",
			short: "List the channels USERNAME has banned",
			query: func(s relationship.Service) func(context.Context, string) ([]*model.Channel, error) { return s.Banned },
		},
		{
			use:   "banned-from [USERNAME]",
			short: "List the channels that have banned USERNAME",
			query: func(s relationship.Service) func(context.Context, string) ([]*model.Channel, error) { return s.BannedFrom },
		},
	}

	commands := make([]*cobra.Command, 0, len(lists))
	for _, list := range lists {
		list := list
		cmd := &cobra.Command{
			Use:   list.use,
			Short: list.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				formatter, err := formatterFor(cmd)
				if err != nil {
					return err
				}

				return runWithService(cmd, service, func(ctx context.Context, service relationship.Service) error {
					channels, err := list.query(service)(ctx, args[0])
					if err != nil {
						return fmt.Errorf("failed to list channels: %w", err)
					}

					output, err := formatter.FormatChannels(channels)
					if err != nil {
						return err
					}
					write(cmd, output)
					return nil
				})
			},
		}
		addFormatFlag(cmd)
		commands = append(commands, cmd)
	}
	return commands
}
