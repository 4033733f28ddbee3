package graph

import (
	"context"
	"fmt"

	"github.com/Taichi-iskw/followban/internal/config"
	"github.com/Taichi-iskw/followban/internal/logger"
	"github.com/Taichi-iskw/followban/internal/repository"
	"github.com/Taichi-iskw/followban/internal/repository/postgres"
	"github.com/Taichi-iskw/followban/internal/repository/redis"
	"github.com/Taichi-iskw/followban/internal/service/directory"
	"github.com/Taichi-iskw/followban/internal/service/relationship"
)

// ServiceFactory creates relationship service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateService creates a relationship service over the configured store
func (f *ServiceFactory) CreateService(ctx context.Context) (relationship.Service, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, closeStore, err := f.createRepository(ctx, cfg)
	if err != nil {
		logger.Sync(log)
		return nil, nil, err
	}

	dir := directory.NewDirectory(repo, log)
	service := relationship.NewService(dir, log)

	cleanup := func() {
		closeStore()
		logger.Sync(log)
	}

	return service, cleanup, nil
}

// StoreStatus reports whether the configured store answered
type StoreStatus struct {
	Store     string `json:"store"`
	Reachable bool   `json:"reachable"`
	Error     string `json:"error,omitempty"`
}

// CheckStore connects to the configured store and closes it again. Only a
// configuration problem is returned as an error; a store that does not
// answer is reported in the status.
func (f *ServiceFactory) CheckStore(ctx context.Context) (*StoreStatus, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	status := &StoreStatus{Store: cfg.Store}
	_, closeStore, err := f.createRepository(ctx, cfg)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	closeStore()

	status.Reachable = true
	return status, nil
}

// createRepository connects to the store selected by cfg.Store
func (f *ServiceFactory) createRepository(ctx context.Context, cfg *config.Config) (repository.ChannelRepository, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewRepository(dbPool), func() { config.CloseDatabasePool(dbPool) }, nil

	case config.StoreRedis:
		client, err := config.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redis.NewRepository(client, cfg.Redis.Prefix), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store: %q", cfg.Store)
	}
}
