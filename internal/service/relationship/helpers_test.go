package relationship

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/Taichi-iskw/followban/internal/errors"
	"github.com/Taichi-iskw/followban/internal/model"
	"github.com/Taichi-iskw/followban/internal/repository"
	"github.com/Taichi-iskw/followban/internal/repository/memory"
	"github.com/Taichi-iskw/followban/internal/service/directory"
)

// flakyRepository wraps a repository and fails selected updates
type flakyRepository struct {
	repository.ChannelRepository

	mu          sync.Mutex
	failUpdates map[string]int
}

func (f *flakyRepository) failNextUpdates(id string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUpdates[id] = times
}

func (f *flakyRepository) Update(ctx context.Context, channel *model.Channel) error {
	f.mu.Lock()
	if f.failUpdates[channel.ID] > 0 {
		f.failUpdates[channel.ID]--
		f.mu.Unlock()
		return apperrors.Wrap(errors.New("connection reset by peer"), apperrors.CodeUnavailable, "failed to update channel")
	}
	f.mu.Unlock()
	return f.ChannelRepository.Update(ctx, channel)
}

func newTestService(t *testing.T) (Service, *flakyRepository) {
	t.Helper()
	repo := &flakyRepository{
		ChannelRepository: memory.NewRepository(),
		failUpdates:       make(map[string]int),
	}
	log := zaptest.NewLogger(t)
	return NewService(directory.NewDirectory(repo, log), log), repo
}

func createChannels(t *testing.T, svc Service, usernames ...string) map[string]*model.Channel {
	t.Helper()
	created := make(map[string]*model.Channel, len(usernames))
	for _, username := range usernames {
		channel, err := svc.CreateChannel(context.Background(), username)
		require.NoError(t, err)
		created[username] = channel
	}
	return created
}

func load(t *testing.T, svc Service, username string) *model.Channel {
	t.Helper()
	channel, err := svc.SearchByUsername(context.Background(), username)
	require.NoError(t, err)
	return channel
}
