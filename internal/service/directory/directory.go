// Package directory resolves usernames and IDs to channel records and owns
// the single-record lifecycle (create, save, remove) on top of a
// ChannelRepository.
package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/logger"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository"
)

// Directory is the identifier resolver plus the record-level repository contract.
// Resolve methods return (nil, nil) when nothing matches; only store failures are errors.
type Directory interface {
	ResolveByUsername(ctx context.Context, username string) (*model.Channel, error)
	ResolveByID(ctx context.Context, id string) (*model.Channel, error)
	ResolveAll(ctx context.Context) ([]*model.Channel, error)
	Create(ctx context.Context, username string) (*model.Channel, error)
	Save(ctx context.Context, channel *model.Channel) error
	Remove(ctx context.Context, id string) error
}

type directory struct {
	repo repository.ChannelRepository
	log  *zap.Logger
}

// NewDirectory creates a Directory over the given repository
func NewDirectory(repo repository.ChannelRepository, log *zap.Logger) Directory {
	return &directory{
		repo: repo,
		log:  logger.OrNop(log),
	}
}

// ResolveByUsername scans every channel and returns the first whose username matches
func (d *directory) ResolveByUsername(ctx context.Context, username string) (*model.Channel, error) {
	if username == "" {
		return nil, nil
	}

	channels, err := d.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, channel := range channels {
		if channel.Username == username {
			return channel, nil
		}
	}

	d.log.Debug("username did not resolve", zap.String("username", username))
	return nil, nil
}

// ResolveByID loads a channel by its durable ID
func (d *directory) ResolveByID(ctx context.Context, id string) (*model.Channel, error) {
	if id == "" {
		return nil, nil
	}

	channel, err := d.repo.GetByID(ctx, id)
	if apperrors.Is(err, apperrors.CodeNotFound) {
		d.log.Debug("id did not resolve", zap.String("channel_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return channel, nil
}

// ResolveAll returns every channel record
func (d *directory) ResolveAll(ctx context.Context) ([]*model.Channel, error) {
	return d.repo.List(ctx)
}

// Create stores a new channel once the username is confirmed free
func (d *directory) Create(ctx context.Context, username string) (*model.Channel, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	existing, err := d.ResolveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeConflict, "channel with this username already exists")
	}

	channel := model.NewChannel(username)
	if err := d.repo.Create(ctx, channel); err != nil {
		return nil, err
	}

	d.log.Info("channel created", zap.String("username", username), zap.String("channel_id", channel.ID))
	return channel, nil
}

// Save persists an existing channel record
func (d *directory) Save(ctx context.Context, channel *model.Channel) error {
	if channel.ID == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "channel has not been created")
	}
	return d.repo.Update(ctx, channel)
}

// Remove deletes a channel record by ID
func (d *directory) Remove(ctx context.Context, id string) error {
	return d.repo.Delete(ctx, id)
}

// ValidateUsername rejects usernames that cannot be stored
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}
	return nil
}
