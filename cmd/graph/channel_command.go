package graph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

// NewChannelCommand creates the channel command and its subcommands
func NewChannelCommand(service relationship.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage channels",
		Long:  `Create, get, rename and delete channels.`,
	}

	cmd.AddCommand(newChannelCreateCommand(service))
	cmd.AddCommand(newChannelGetCommand(service))
	cmd.AddCommand(newChannelRenameCommand(service))
	cmd.AddCommand(newChannelDeleteCommand(service))

	return cmd
}

// channelAction runs one single-channel operation and prints the resulting record
func channelAction(service relationship.Service, failure string, action func(ctx context.Context, service relationship.Service, args []string) (*model.Channel, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		formatter, err := formatterFor(cmd)
		if err != nil {
			return err
		}

		return runWithService(cmd, service, func(ctx context.Context, service relationship.Service) error {
			channel, err := action(ctx, service, args)
			if err != nil {
				return fmt.Errorf("failed to %s: %w", failure, err)
			}

			output, err := formatter.FormatChannel(channel)
			if err != nil {
				return err
			}
			write(cmd, output)
			return nil
		})
	}
}

func newChannelCreateCommand(service relationship.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [USERNAME]",
		Short: "Create a channel",
		Args:  cobra.ExactArgs(1),
		RunE: channelAction(service, "create channel", func(ctx context.Context, service relationship.Service, args []string) (*model.Channel, error) {
			return service.CreateChannel(ctx, args[0])
		}),
	}
	addFormatFlag(cmd)
	return cmd
}

func newChannelGetCommand(service relationship.Service) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get [USERNAME]",
		Short: "Get a channel by username or --id",
		Args: func(cmd *cobra.Command, args []string) error {
			if (id == "") == (len(args) == 0) {
				return fmt.Errorf("provide either a username or --id")
			}
			return nil
		},
		RunE: channelAction(service, "get channel", func(ctx context.Context, service relationship.Service, args []string) (*model.Channel, error) {
			if id != "" {
				return service.SearchByID(ctx, id)
			}
			return service.SearchByUsername(ctx, args[0])
		}),
	}
	cmd.Flags().StringVar(&id, "id", "", "Look the channel up by ID instead of username")
	addFormatFlag(cmd)
	return cmd
}

func newChannelRenameCommand(service relationship.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename [USERNAME] [NEW_USERNAME]",
		Short: "Change a channel's username",
		Long:  `Change a channel's username. Edges reference channel IDs and are unaffected.`,
		Args:  cobra.ExactArgs(2),
		RunE: channelAction(service, "rename channel", func(ctx context.Context, service relationship.Service, args []string) (*model.Channel, error) {
			return service.ChangeUsername(ctx, args[0], args[1])
		}),
	}
	addFormatFlag(cmd)
	return cmd
}

func newChannelDeleteCommand(service relationship.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [USERNAME]",
		Short: "Delete a channel and every edge touching it",
		Long: `Delete a channel after removing it from the lists of every channel it is
connected to. If some edges cannot be removed the channel is kept and the
command can be run again.`,
		Args: cobra.ExactArgs(1),
		RunE: channelAction(service, "delete channel", func(ctx context.Context, service relationship.Service, args []string) (*model.Channel, error) {
			return service.DeleteChannel(ctx, args[0])
		}),
	}
	addFormatFlag(cmd)
	return cmd
}
