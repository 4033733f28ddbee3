// Package memory provides an in-process ChannelRepository. Records are cloned
// on the way in and out so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository"
)

type channelRepository struct {
	mu        sync.RWMutex
	channels  map[string]*model.Channel
	usernames map[string]string
	now       func() time.Time
}

// NewRepository creates an empty in-memory ChannelRepository
func NewRepository() repository.ChannelRepository {
	return &channelRepository{
		channels:  make(map[string]*model.Channel),
		usernames: make(map[string]string),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *channelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to get channel")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	channel, ok := r.channels[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	return channel.Clone(), nil
}

func (r *channelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to list channels")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]*model.Channel, 0, len(r.channels))
	for _, channel := range r.channels {
		channels = append(channels, channel.Clone())
	}
	sort.Slice(channels, func(i, j int) bool {
		if channels[i].Username != channels[j].Username {
			return channels[i].Username < channels[j].Username
		}
		return channels[i].ID < channels[j].ID
	})
	return channels, nil
}

func (r *channelRepository) Create(ctx context.Context, channel *model.Channel) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to create channel")
	}
	if channel.Username == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := channel.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, ok := r.channels[id]; ok {
		return apperrors.New(apperrors.CodeConflict, "channel with this ID already exists")
	}
	if _, ok := r.usernames[channel.Username]; ok {
		return apperrors.New(apperrors.CodeConflict, "channel with this username already exists")
	}

	channel.ID = id
	channel.Normalize()
	channel.CreatedAt = r.now()
	channel.UpdatedAt = channel.CreatedAt
	r.channels[channel.ID] = channel.Clone()
	r.usernames[channel.Username] = channel.ID
	return nil
}

func (r *channelRepository) Update(ctx context.Context, channel *model.Channel) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to update channel")
	}
	if channel.Username == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.channels[channel.ID]
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	if owner, taken := r.usernames[channel.Username]; taken && owner != channel.ID {
		return apperrors.New(apperrors.CodeConflict, "channel with this username already exists")
	}

	channel.Normalize()
	channel.CreatedAt = existing.CreatedAt
	channel.UpdatedAt = r.now()
	delete(r.usernames, existing.Username)
	r.usernames[channel.Username] = channel.ID
	r.channels[channel.ID] = channel.Clone()
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to delete channel")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.channels[id]
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	delete(r.usernames, existing.Username)
	delete(r.channels, id)
	return nil
}
