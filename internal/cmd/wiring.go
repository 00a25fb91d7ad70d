package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gravitrone/tagpicker/internal/api"
	"github.com/gravitrone/tagpicker/internal/cache"
	"github.com/gravitrone/tagpicker/internal/config"
	"github.com/gravitrone/tagpicker/internal/logging"
	"github.com/gravitrone/tagpicker/internal/repository"
)

const cachePingTimeout = 2 * time.Second

// Runtime bundles the services a command needs.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	Client *api.Client
	Repo   *repository.Repository

	closers []func() error
}

// NewRuntime builds the logger, API client and tag repository from cfg. A
// configured but unreachable Redis is logged and skipped.
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client := api.NewClient(cfg.BaseURL, cfg.ProjectID, cfg.APIKey, cfg.Timeout())
	rt := &Runtime{Config: cfg, Logger: logger, Client: client}

	opts := []repository.Option{
		repository.WithProjectSources(func(projectID string) repository.Source {
			return client.ForProject(projectID)
		}),
	}
	if cfg.RedisAddr != "" {
		shared := cache.NewRedisCache(cache.NewRedisClient(cfg.RedisAddr, "", 0), cfg.CacheTTL())
		pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
		err := shared.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("tag cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = shared.Close()
		} else {
			opts = append(opts, repository.WithCache(shared))
			rt.closers = append(rt.closers, shared.Close)
		}
	}

	rt.Repo = repository.New(client, logger, opts...)
	return rt, nil
}

// Close releases the cache connection and flushes the logger.
func (r *Runtime) Close() {
	for _, c := range r.closers {
		if err := c(); err != nil {
			r.Logger.Debug("close runtime", zap.Error(err))
		}
	}
	_ = r.Logger.Sync()
}

func loadRuntime(ctx context.Context) (*Runtime, error) {
	cfg, err := config.LoadOrEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewRuntime(ctx, cfg)
}
