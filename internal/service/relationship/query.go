package relationship

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Taichi-iskw/followban/internal/edgeset"
	"github.com/Taichi-iskw/followban/internal/model"
)

// resolveLimit caps concurrent ID lookups when expanding an edge list
const resolveLimit = 8

// IsFollower reports whether follower follows followed; false when either is missing
func (s *service) IsFollower(ctx context.Context, follower, followed string) (bool, error) {
	return s.holds(ctx, model.FollowedList, follower, followed)
}

// IsBanned reports whether judge has banned victim; false when either is missing
func (s *service) IsBanned(ctx context.Context, victim, judge string) (bool, error) {
	return s.holds(ctx, model.BannedFromList, victim, judge)
}

// holds reports whether owner's list contains other's ID
func (s *service) holds(ctx context.Context, kind model.ListKind, ownerName, otherName string) (bool, error) {
	owner, err := s.dir.ResolveByUsername(ctx, ownerName)
	if err != nil || owner == nil {
		return false, err
	}
	other, err := s.dir.ResolveByUsername(ctx, otherName)
	if err != nil || other == nil {
		return false, err
	}
	return edgeset.Contains(other.ID, *owner.List(kind)), nil
}

// Followers returns the channels following username
func (s *service) Followers(ctx context.Context, username string) ([]*model.Channel, error) {
	return s.expand(ctx, username, model.FollowerList)
}

// Following returns the channels username follows
func (s *service) Following(ctx context.Context, username string) ([]*model.Channel, error) {
	return s.expand(ctx, username, model.FollowedList)
}

// Banned returns the channels username has banned
func (s *service) Banned(ctx context.Context, username string) ([]*model.Channel, error) {
	return s.expand(ctx, username, model.BannedList)
}

// BannedFrom returns the channels that have banned username
func (s *service) BannedFrom(ctx context.Context, username string) ([]*model.Channel, error) {
	return s.expand(ctx, username, model.BannedFromList)
}

// expand resolves every ID in one of the channel's lists, in list order.
// IDs that no longer resolve are logged and left out.
func (s *service) expand(ctx context.Context, username string, kind model.ListKind) ([]*model.Channel, error) {
	channel, err := s.mustResolve(ctx, username)
	if err != nil {
		return nil, err
	}

	ids := *channel.List(kind)
	resolved := make([]*model.Channel, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() (err error) {
			resolved[i], err = s.dir.ResolveByID(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	channels := make([]*model.Channel, 0, len(ids))
	for i, other := range resolved {
		if other == nil {
			s.log.Warn("dangling reference",
				zap.String("channel_id", channel.ID),
				zap.String("list", string(kind)),
				zap.String("other_id", ids[i]))
			continue
		}
		channels = append(channels, other)
	}
	return channels, nil
}
