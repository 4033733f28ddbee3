// Package redis stores each channel as a JSON document keyed by its ID, with a
// set indexing every ID and a hash reserving usernames.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository"
)

// DefaultPrefix namespaces every key written by the repository
const DefaultPrefix = "followban:"

type channelRepository struct {
	client goredis.UniversalClient
	prefix string
}

// NewRepository creates a ChannelRepository backed by Redis
func NewRepository(client goredis.UniversalClient, prefix string) repository.ChannelRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &channelRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *channelRepository) channelKey(id string) string {
	return r.prefix + "channel:" + id
}

func (r *channelRepository) indexKey() string {
	return r.prefix + "channels"
}

func (r *channelRepository) usernamesKey() string {
	return r.prefix + "usernames"
}

func (r *channelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	data, err := r.client.Get(ctx, r.channelKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "channel not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to get channel")
	}
	return decode(data)
}

func (r *channelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to list channel IDs")
	}
	channels := make([]*model.Channel, 0, len(ids))
	if len(ids) == 0 {
		return channels, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.channelKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to list channels")
	}

	for _, value := range values {
		// index entries can briefly outlive a deleted document
		raw, ok := value.(string)
		if !ok {
			continue
		}
		channel, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
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
	if channel.Username == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}
	assigned := channel.ID == ""
	if assigned {
		channel.ID = uuid.NewString()
	}
	if err := r.create(ctx, channel); err != nil {
		if assigned {
			channel.ID = ""
		}
		return err
	}
	return nil
}

func (r *channelRepository) create(ctx context.Context, channel *model.Channel) error {
	channel.Normalize()
	channel.CreatedAt = time.Now().UTC()
	channel.UpdatedAt = channel.CreatedAt

	data, err := json.Marshal(channel)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode channel")
	}

	reserved, err := r.client.HSetNX(ctx, r.usernamesKey(), channel.Username, channel.ID).Result()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to reserve username")
	}
	if !reserved {
		return apperrors.New(apperrors.CodeConflict, "channel with this username already exists")
	}

	// document and index entry land together or not at all
	var created *goredis.BoolCmd
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		created = pipe.SetNX(ctx, r.channelKey(channel.ID), data, 0)
		pipe.SAdd(ctx, r.indexKey(), channel.ID)
		return nil
	})
	if err != nil {
		r.undoCreate(ctx, channel, created != nil && created.Val())
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to create channel")
	}
	if !created.Val() {
		r.client.HDel(ctx, r.usernamesKey(), channel.Username)
		return apperrors.New(apperrors.CodeConflict, "channel with this ID already exists")
	}
	return nil
}

// undoCreate releases what a failed create may have left behind so a retry
// starts clean
func (r *channelRepository) undoCreate(ctx context.Context, channel *model.Channel, documentWritten bool) {
	if documentWritten {
		r.client.Del(ctx, r.channelKey(channel.ID))
		r.client.SRem(ctx, r.indexKey(), channel.ID)
	}
	r.client.HDel(ctx, r.usernamesKey(), channel.Username)
}

func (r *channelRepository) Update(ctx context.Context, channel *model.Channel) error {
	if channel.Username == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}
	existing, err := r.GetByID(ctx, channel.ID)
	if err != nil {
		return err
	}

	renamed := existing.Username != channel.Username
	if renamed {
		reserved, err := r.client.HSetNX(ctx, r.usernamesKey(), channel.Username, channel.ID).Result()
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to reserve username")
		}
		if !reserved {
			return apperrors.New(apperrors.CodeConflict, "channel with this username already exists")
		}
	}

	channel.Normalize()
	channel.CreatedAt = existing.CreatedAt
	channel.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(channel)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode channel")
	}

	var written *goredis.BoolCmd
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		written = pipe.SetXX(ctx, r.channelKey(channel.ID), data, goredis.KeepTTL)
		if renamed {
			pipe.HDel(ctx, r.usernamesKey(), existing.Username)
		}
		return nil
	})
	if err != nil || !written.Val() {
		if renamed {
			r.client.HDel(ctx, r.usernamesKey(), channel.Username)
		}
		// SET XX replies nil when the record was deleted after it was read
		if err == nil || errors.Is(err, goredis.Nil) {
			return apperrors.New(apperrors.CodeNotFound, "channel not found")
		}
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to update channel")
	}
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, r.channelKey(id))
		pipe.SRem(ctx, r.indexKey(), id)
		pipe.HDel(ctx, r.usernamesKey(), existing.Username)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to delete channel")
	}
	return nil
}

func decode(data []byte) (*model.Channel, error) {
	var channel model.Channel
	if err := json.Unmarshal(data, &channel); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode channel")
	}
	channel.Normalize()
	return &channel, nil
}
