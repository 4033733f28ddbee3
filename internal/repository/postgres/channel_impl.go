package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository"
)

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const selectChannel = "SELECT id, username, follower_list, followed_list, banned_list, banned_from_list, created_at, updated_at FROM channels"

// channelRepository implements ChannelRepository using PostgreSQL
type channelRepository struct {
	pool Pool
}

// NewRepository creates a new instance of ChannelRepository
func NewRepository(pool Pool) repository.ChannelRepository {
	return &channelRepository{
		pool: pool,
	}
}

// GetByID retrieves a channel by its ID
func (r *channelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	row := r.pool.QueryRow(ctx, selectChannel+" WHERE id = $1", id)

	channel, err := scanChannel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "channel not found")
		}
		return nil, handlePostgreSQLError(err, "failed to get channel")
	}

	return channel, nil
}

// List retrieves every channel
func (r *channelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	rows, err := r.pool.Query(ctx, selectChannel+" ORDER BY username, id")
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to list channels")
	}
	defer rows.Close()

	channels := []*model.Channel{}
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, handlePostgreSQLError(err, "failed to scan channel row")
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, "failed to iterate channel rows")
	}

	return channels, nil
}

// Create creates a new channel record
func (r *channelRepository) Create(ctx context.Context, channel *model.Channel) error {
	assigned := channel.ID == ""
	if assigned {
		channel.ID = uuid.NewString()
	}
	channel.Normalize()

	sql := `INSERT INTO channels (id, username, follower_list, followed_list, banned_list, banned_from_list)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, sql,
		channel.ID, channel.Username,
		channel.FollowerList, channel.FollowedList, channel.BannedList, channel.BannedFromList,
	).Scan(&channel.CreatedAt, &channel.UpdatedAt)
	if err != nil {
		if assigned {
			channel.ID = ""
		}
		return handlePostgreSQLError(err, "failed to create channel")
	}
	return nil
}

// Update updates an existing channel record
func (r *channelRepository) Update(ctx context.Context, channel *model.Channel) error {
	channel.Normalize()

	sql := `UPDATE channels SET username = $2, follower_list = $3, followed_list = $4,
		banned_list = $5, banned_from_list = $6, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, sql,
		channel.ID, channel.Username,
		channel.FollowerList, channel.FollowedList, channel.BannedList, channel.BannedFromList,
	)
	if err != nil {
		return handlePostgreSQLError(err, "failed to update channel")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	return nil
}

// Delete deletes a channel by its ID
func (r *channelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM channels WHERE id = $1", id)
	if err != nil {
		return handlePostgreSQLError(err, "failed to delete channel")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "channel not found")
	}
	return nil
}

func scanChannel(row pgx.Row) (*model.Channel, error) {
	var channel model.Channel
	err := row.Scan(
		&channel.ID, &channel.Username,
		&channel.FollowerList, &channel.FollowedList, &channel.BannedList, &channel.BannedFromList,
		&channel.CreatedAt, &channel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	channel.Normalize()
	return &channel, nil
}
