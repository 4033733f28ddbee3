package relationship

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/logger"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/service/directory"
)

// Service is the relationship engine. It keeps both halves of every follow
// and ban edge in sync across the two channel records involved.
type Service interface {
	CreateChannel(ctx context.Context, username string) (*model.Channel, error)
	DeleteChannel(ctx context.Context, username string) (*model.Channel, error)
	SearchByUsername(ctx context.Context, username string) (*model.Channel, error)
	SearchByID(ctx context.Context, id string) (*model.Channel, error)
	ChangeUsername(ctx context.Context, oldUsername, newUsername string) (*model.Channel, error)

	Follow(ctx context.Context, follower, followed string) (*model.Channel, error)
	Unfollow(ctx context.Context, follower, followed string) (*model.Channel, error)
	Ban(ctx context.Context, judge, victim string) (*model.Channel, error)
	Unban(ctx context.Context, judge, victim string) (*model.Channel, error)

	IsFollower(ctx context.Context, follower, followed string) (bool, error)
	IsBanned(ctx context.Context, victim, judge string) (bool, error)

	Followers(ctx context.Context, username string) ([]*model.Channel, error)
	Following(ctx context.Context, username string) ([]*model.Channel, error)
	Banned(ctx context.Context, username string) ([]*model.Channel, error)
	BannedFrom(ctx context.Context, username string) ([]*model.Channel, error)

	Audit(ctx context.Context) (*Report, error)
	Repair(ctx context.Context) (*Report, error)
}

type service struct {
	dir directory.Directory
	log *zap.Logger
}

// NewService creates the relationship engine over a channel directory
func NewService(dir directory.Directory, log *zap.Logger) Service {
	return &service{
		dir: dir,
		log: logger.OrNop(log),
	}
}

// CreateChannel creates a channel with empty edge lists
func (s *service) CreateChannel(ctx context.Context, username string) (*model.Channel, error) {
	return s.dir.Create(ctx, username)
}

// SearchByUsername returns the channel holding username or NOT_FOUND
func (s *service) SearchByUsername(ctx context.Context, username string) (*model.Channel, error) {
	return s.mustResolve(ctx, username)
}

// SearchByID returns the channel with the given ID or NOT_FOUND
func (s *service) SearchByID(ctx context.Context, id string) (*model.Channel, error) {
	channel, err := s.dir.ResolveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("channel with ID %q not found", id))
	}
	return channel, nil
}

// ChangeUsername renames a channel. Edges reference IDs, so no other record changes.
func (s *service) ChangeUsername(ctx context.Context, oldUsername, newUsername string) (*model.Channel, error) {
	if err := directory.ValidateUsername(newUsername); err != nil {
		return nil, err
	}

	channel, err := s.mustResolve(ctx, oldUsername)
	if err != nil {
		return nil, err
	}
	if oldUsername == newUsername {
		return channel, nil
	}

	taken, err := s.dir.ResolveByUsername(ctx, newUsername)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, apperrors.New(apperrors.CodeConflict, fmt.Sprintf("username %q is already taken", newUsername))
	}

	channel.Username = newUsername
	if err := s.dir.Save(ctx, channel); err != nil {
		return nil, err
	}

	s.log.Info("channel renamed",
		zap.String("channel_id", channel.ID),
		zap.String("from", oldUsername),
		zap.String("to", newUsername))
	return channel, nil
}

func (s *service) mustResolve(ctx context.Context, username string) (*model.Channel, error) {
	channel, err := s.dir.ResolveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, notFound(username)
	}
	return channel, nil
}

func notFound(username string) error {
	return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("channel %q not found", username))
}
