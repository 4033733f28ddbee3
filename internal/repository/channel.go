package repository

import (
	"context"

	"github.com/Taichi-iskw/followban/internal/model"
)

// ChannelRepository defines persistence of channel records. Each method is
// atomic for the single record it touches; nothing spans records.
type ChannelRepository interface {
	// GetByID retrieves a channel by its ID
	GetByID(ctx context.Context, id string) (*model.Channel, error)

	// List retrieves every channel ordered by username, then ID
	List(ctx context.Context) ([]*model.Channel, error)

	// Create stores a new channel record, assigning an ID when it has none
	Create(ctx context.Context, channel *model.Channel) error

	// Update replaces an existing channel record
	Update(ctx context.Context, channel *model.Channel) error

	// Delete deletes a channel by its ID
	Delete(ctx context.Context, id string) error
}
