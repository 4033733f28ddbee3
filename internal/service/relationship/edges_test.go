package relationship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
)

func TestService_AhmetKaanScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	channels := createChannels(t, svc, "Ahmet", "Kaan")
	ahmetID, kaanID := channels["Ahmet"].ID, channels["Kaan"].ID

	_, err := svc.Follow(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)
	assert.Equal(t, []string{ahmetID}, load(t, svc, "Kaan").FollowerList)
	assert.Equal(t, []string{kaanID}, load(t, svc, "Ahmet").FollowedList)

	_, err = svc.Ban(ctx, "Kaan", "Ahmet")
	require.NoError(t, err)
	assert.Equal(t, []string{kaanID}, load(t, svc, "Ahmet").BannedFromList)
	assert.Equal(t, []string{ahmetID}, load(t, svc, "Kaan").BannedList)

	_, err = svc.DeleteChannel(ctx, "Ahmet")
	require.NoError(t, err)

	kaan := load(t, svc, "Kaan")
	assert.Empty(t, kaan.FollowerList)
	assert.Empty(t, kaan.BannedList)

	gone, err := svc.SearchByUsername(ctx, "Ahmet")
	assert.Nil(t, gone)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestService_FollowIsSymmetric(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	channels := createChannels(t, svc, "Ahmet", "Kaan")

	follower, err := svc.Follow(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)
	assert.Equal(t, "Ahmet", follower.Username)
	assert.Equal(t, []string{channels["Kaan"].ID}, follower.FollowedList)

	isFollower, err := svc.IsFollower(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)
	assert.True(t, isFollower)

	reverse, err := svc.IsFollower(ctx, "Kaan", "Ahmet")
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestService_BanIsSymmetric(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	createChannels(t, svc, "Judge", "Victim")

	judge, err := svc.Ban(ctx, "Judge", "Victim")
	require.NoError(t, err)
	assert.Equal(t, "Judge", judge.Username)

	banned, err := svc.IsBanned(ctx, "Victim", "Judge")
	require.NoError(t, err)
	assert.True(t, banned)

	banned, err = svc.IsBanned(ctx, "Judge", "Victim")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestService_RepeatedLinkIsDetected(t *testing.T) {
	tests := []struct {
		name string
		link func(Service) error
	}{
		{
			name: "follow",
			link: func(svc Service) error {
				_, err := svc.Follow(context.Background(), "Ahmet", "Kaan")
				return err
			},
		},
		{
			name: "ban",
			link: func(svc Service) error {
				_, err := svc.Ban(context.Background(), "Ahmet", "Kaan")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			createChannels(t, svc, "Ahmet", "Kaan")

			require.NoError(t, tt.link(svc))
			ahmetOnce, kaanOnce := load(t, svc, "Ahmet"), load(t, svc, "Kaan")

			err := tt.link(svc)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))

			ahmetTwice, kaanTwice := load(t, svc, "Ahmet"), load(t, svc, "Kaan")
			assert.Equal(t, ahmetOnce.FollowedList, ahmetTwice.FollowedList)
			assert.Equal(t, ahmetOnce.BannedList, ahmetTwice.BannedList)
			assert.Equal(t, kaanOnce.FollowerList, kaanTwice.FollowerList)
			assert.Equal(t, kaanOnce.BannedFromList, kaanTwice.BannedFromList)
		})
	}
}

func TestService_FollowUnfollowRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	createChannels(t, svc, "Ahmet", "Kaan", "Zeynep")

	// pre-existing edges that must survive untouched
	_, err := svc.Follow(ctx, "Zeynep", "Kaan")
	require.NoError(t, err)
	_, err = svc.Follow(ctx, "Ahmet", "Zeynep")
	require.NoError(t, err)

	ahmetBefore, kaanBefore := load(t, svc, "Ahmet"), load(t, svc, "Kaan")

	_, err = svc.Follow(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)
	_, err = svc.Unfollow(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)

	ahmetAfter, kaanAfter := load(t, svc, "Ahmet"), load(t, svc, "Kaan")
	assert.Equal(t, ahmetBefore.FollowedList, ahmetAfter.FollowedList)
	assert.Equal(t, kaanBefore.FollowerList, kaanAfter.FollowerList)
}

func TestService_UnlinkWithoutEdge(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	createChannels(t, svc, "Ahmet", "Kaan")

	_, err := svc.Unfollow(ctx, "Ahmet", "Kaan")
	assert.Equal(t, apperrors.CodeNotConnected, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), `"Ahmet" does not follow "Kaan"`)

	_, err = svc.Unban(ctx, "Ahmet", "Kaan")
	assert.Equal(t, apperrors.CodeNotConnected, apperrors.CodeOf(err))
}

func TestService_PairedOperationValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	createChannels(t, svc, "Ahmet")

	tests := []struct {
		name     string
		call     func() error
		wantCode string
	}{
		{
			name: "missing subject",
			call: func() error {
				_, err := svc.Follow(ctx, "Ahmet", "Nobody")
				return err
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name: "missing actor",
			call: func() error {
				_, err := svc.Ban(ctx, "Nobody", "Ahmet")
				return err
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name: "self follow",
			call: func() error {
				_, err := svc.Follow(ctx, "Ahmet", "Ahmet")
				return err
			},
			wantCode: apperrors.CodeInvalidArg,
		},
		{
			name: "self ban",
			call: func() error {
				_, err := svc.Ban(ctx, "Ahmet", "Ahmet")
				return err
			},
			wantCode: apperrors.CodeInvalidArg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}

	assert.Empty(t, load(t, svc, "Ahmet").FollowedList)
	assert.Empty(t, load(t, svc, "Ahmet").BannedList)
}

func TestService_QueriesOnMissingChannels(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	createChannels(t, svc, "Ahmet")

	isFollower, err := svc.IsFollower(ctx, "Ahmet", "Nobody")
	require.NoError(t, err)
	assert.False(t, isFollower)

	banned, err := svc.IsBanned(ctx, "Nobody", "Ahmet")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestService_RetryCompletesHalfAppliedFollow(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	channels := createChannels(t, svc, "Ahmet", "Kaan")

	// the follower side lands, the followed side does not
	repo.failNextUpdates(channels["Kaan"].ID, 1)
	_, err := svc.Follow(ctx, "Ahmet", "Kaan")
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))

	assert.Equal(t, []string{channels["Kaan"].ID}, load(t, svc, "Ahmet").FollowedList)
	assert.Empty(t, load(t, svc, "Kaan").FollowerList)

	report, err := svc.Audit(ctx)
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, Asymmetric, report.Violations[0].Kind)

	// retrying the whole operation completes the missing half
	_, err = svc.Follow(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)
	assert.Equal(t, []string{channels["Ahmet"].ID}, load(t, svc, "Kaan").FollowerList)
	assert.Equal(t, []string{channels["Kaan"].ID}, load(t, svc, "Ahmet").FollowedList)

	_, err = svc.Follow(ctx, "Ahmet", "Kaan")
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
}

func TestService_RetryCompletesHalfAppliedUnban(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	channels := createChannels(t, svc, "Judge", "Victim")

	_, err := svc.Ban(ctx, "Judge", "Victim")
	require.NoError(t, err)

	repo.failNextUpdates(channels["Victim"].ID, 1)
	_, err = svc.Unban(ctx, "Judge", "Victim")
	require.Error(t, err)
	assert.Empty(t, load(t, svc, "Judge").BannedList)
	assert.Equal(t, []string{channels["Judge"].ID}, load(t, svc, "Victim").BannedFromList)

	_, err = svc.Unban(ctx, "Judge", "Victim")
	require.NoError(t, err)
	assert.Empty(t, load(t, svc, "Victim").BannedFromList)
}

func TestService_FollowCompletesActorSideOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	channels := createChannels(t, svc, "Ahmet", "Kaan")

	// only the followed side holds the edge, as after a racing concurrent follow
	kaan := load(t, svc, "Kaan")
	kaan.FollowerList = []string{channels["Ahmet"].ID}
	require.NoError(t, repo.Update(ctx, kaan))

	_, err := svc.Follow(ctx, "Ahmet", "Kaan")
	require.NoError(t, err)
	assert.Equal(t, []string{channels["Kaan"].ID}, load(t, svc, "Ahmet").FollowedList)
	assert.Equal(t, []string{channels["Ahmet"].ID}, load(t, svc, "Kaan").FollowerList)
}

func TestService_FailedActorWriteLeavesNothing(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	channels := createChannels(t, svc, "Ahmet", "Kaan")

	repo.failNextUpdates(channels["Ahmet"].ID, 1)
	_, err := svc.Follow(ctx, "Ahmet", "Kaan")
	require.Error(t, err)

	assert.Empty(t, load(t, svc, "Ahmet").FollowedList)
	assert.Empty(t, load(t, svc, "Kaan").FollowerList)
}
