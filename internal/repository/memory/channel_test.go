package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository/common"
)

func TestChannelRepository_Contract(t *testing.T) {
	common.RunChannelRepositoryContract(t, NewRepository())
}

func TestChannelRepository_RecordsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	channel := model.NewChannel("Ahmet")
	require.NoError(t, repo.Create(ctx, channel))

	// mutating the caller's copy must not leak into the store
	channel.FollowerList = append(channel.FollowerList, "someone")

	got, err := repo.GetByID(ctx, channel.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FollowerList)

	got.BannedList = append(got.BannedList, "someone")
	again, err := repo.GetByID(ctx, channel.ID)
	require.NoError(t, err)
	assert.Empty(t, again.BannedList)
}

func TestChannelRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRepository().List(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}
