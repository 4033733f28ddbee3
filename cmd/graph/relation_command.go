package graph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

type edgeCommand struct {
	use     string
	short   string
	failure string
	call    func(service relationship.Service) func(ctx context.Context, actor, subject string) (*model.Channel, error)
}

var edgeCommands = []edgeCommand{
	{
		use:     "follow [FOLLOWER] [FOLLOWED]",
		short:   "Make FOLLOWER follow FOLLOWED",
		failure: "follow",
		call:    func(s relationship.Service) func(context.Context, string, string) (*model.Channel, error) { return s.Follow },
	},
	{
		use:     "unfollow [FOLLOWER] [FOLLOWED]",
		short:   "Make FOLLOWER stop following FOLLOWED",
		failure: "unfollow",
		call:    func(s relationship.Service) func(context.Context, string, string) (*model.Channel, error) { return s.Unfollow },
	},
	{
		use:     "ban [JUDGE] [VICTIM]",
		short:   "Make JUDGE ban VICTIM",
		failure: "ban",
		call:    func(s relationship.Service) func(context.Context, string, string) (*model.Channel, error) { return s.Ban },
	},
	{
		use:     "unban [JUDGE] [VICTIM]",
		short:   "Lift JUDGE's ban on VICTIM",
		failure: "unban",
		call:    func(s relationship.Service) func(context.Context, string, string) (*model.Channel, error) { return s.Unban },
	},
}

// NewRelationCommands creates the follow, unfollow, ban and unban commands.
// Each prints the acting channel's updated record.
func NewRelationCommands(service relationship.Service) []*cobra.Command {
	commands := make([]*cobra.Command, 0, len(edgeCommands))
	for _, ec := range edgeCommands {
		ec := ec
		cmd := &cobra.Command{
			Use:   ec.use,
			Short: ec.short,
			Args:  cobra.ExactArgs(2),
			RunE: channelAction(service, ec.failure, func(ctx context.Context, service relationship.Service, args []string) (*model.Channel, error) {
				return ec.call(service)(ctx, args[0], args[1])
			}),
		}
		addFormatFlag(cmd)
		commands = append(commands, cmd)
	}
	return commands
}

// NewCheckCommands creates the is-follower and is-banned commands
func NewCheckCommands(service relationship.Service) []*cobra.Command {
	isFollower := &cobra.Command{
		Use:   "is-follower [FOLLOWER] [FOLLOWED]",
		Short: "Check whether FOLLOWER follows FOLLOWED",
		Args:  cobra.ExactArgs(2),
		RunE: checkAction(service, func(ctx context.Context, service relationship.Service, args []string) (*CheckResult, error) {
			result, err := service.IsFollower(ctx, args[0], args[1])
			if err != nil {
				return nil, err
			}
			return &CheckResult{Query: fmt.Sprintf("%s follows %s", args[0], args[1]), Result: result}, nil
		}),
	}
	addFormatFlag(isFollower)

	isBanned := &cobra.Command{
		Use:   "is-banned [VICTIM] [JUDGE]",
		Short: "Check whether JUDGE has banned VICTIM",
		Args:  cobra.ExactArgs(2),
		RunE: checkAction(service, func(ctx context.Context, service relationship.Service, args []string) (*CheckResult, error) {
			result, err := service.IsBanned(ctx, args[0], args[1])
			if err != nil {
				return nil, err
			}
			return &CheckResult{Query: fmt.Sprintf("%s is banned by %s", args[0], args[1]), Result: result}, nil
		}),
	}
	addFormatFlag(isBanned)

	return []*cobra.Command{isFollower, isBanned}
}

func checkAction(service relationship.Service, check func(ctx context.Context, service relationship.Service, args []string) (*CheckResult, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		formatter, err := formatterFor(cmd)
		if err != nil {
			return err
		}

		return runWithService(cmd, service, func(ctx context.Context, service relationship.Service) error {
			result, err := check(ctx, service, args)
			if err != nil {
				return fmt.Errorf("failed to check relationship: %w", err)
			}

			output, err := formatter.FormatCheck(result)
			if err != nil {
				return err
			}
			write(cmd, output)
			return nil
		})
	}
}
