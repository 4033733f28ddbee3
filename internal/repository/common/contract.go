package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository"
)

// RunChannelRepositoryContract exercises the behaviour every ChannelRepository
// backend must share. The repository must start empty.
func RunChannelRepositoryContract(t *testing.T, repo repository.ChannelRepository) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ahmet := model.NewChannel("Ahmet")
	kaan := model.NewChannel("Kaan")

	t.Run("Create assigns IDs", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, ahmet))
		require.NoError(t, repo.Create(ctx, kaan))
		assert.NotEmpty(t, ahmet.ID)
		assert.NotEmpty(t, kaan.ID)
		assert.NotEqual(t, ahmet.ID, kaan.ID)
	})

	t.Run("Create rejects a taken username", func(t *testing.T) {
		err := repo.Create(ctx, model.NewChannel("Ahmet"))
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	})

	t.Run("Create rejects a taken ID", func(t *testing.T) {
		duplicate := model.NewChannel("Someone")
		duplicate.ID = ahmet.ID
		err := repo.Create(ctx, duplicate)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	})

	t.Run("GetByID returns the stored record", func(t *testing.T) {
		got, err := repo.GetByID(ctx, ahmet.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ahmet", got.Username)
		assert.Equal(t, []string{}, got.FollowedList)
		assert.Equal(t, []string{}, got.BannedFromList)
	})

	t.Run("GetByID reports NOT_FOUND", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "does-not-exist")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("Update persists lists", func(t *testing.T) {
		ahmet.FollowedList = []string{kaan.ID}
		require.NoError(t, repo.Update(ctx, ahmet))

		got, err := repo.GetByID(ctx, ahmet.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{kaan.ID}, got.FollowedList)
	})

	t.Run("Update renames and frees the old username", func(t *testing.T) {
		ahmet.Username = "Mehmet"
		require.NoError(t, repo.Update(ctx, ahmet))

		reused := model.NewChannel("Ahmet")
		require.NoError(t, repo.Create(ctx, reused))
		require.NoError(t, repo.Delete(ctx, reused.ID))
	})

	t.Run("Update rejects a username held by another channel", func(t *testing.T) {
		clash := ahmet.Clone()
		clash.Username = "Kaan"
		err := repo.Update(ctx, clash)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	})

	t.Run("Update reports NOT_FOUND for a missing record", func(t *testing.T) {
		ghost := model.NewChannel("Ghost")
		ghost.ID = "does-not-exist"
		err := repo.Update(ctx, ghost)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("List is ordered by username", func(t *testing.T) {
		channels, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, channels, 2)
		assert.Equal(t, "Kaan", channels[0].Username)
		assert.Equal(t, "Mehmet", channels[1].Username)
	})

	t.Run("Delete removes the record", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, kaan.ID))

		_, err := repo.GetByID(ctx, kaan.ID)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

		err = repo.Delete(ctx, kaan.ID)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

		channels, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, channels, 1)
	})
}
