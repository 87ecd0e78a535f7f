package cli

import (
	"context"
	"fmt"

	"github.com/futurita/flowbox/pkg/config"
	"github.com/futurita/flowbox/pkg/container"
	"github.com/futurita/flowbox/pkg/gesture"
	"github.com/futurita/flowbox/pkg/store"
)

// openStore constructs the persistence backend selected by the config.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendRedis:
		return store.NewRedis(ctx, store.RedisConfig{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
	case config.BackendMongo:
		return store.NewMongo(ctx, store.MongoConfig{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		})
	case config.BackendDiskv:
		return store.NewDiskv(cfg.Store.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// openContainer loads the config at path, opens its store, and restores the
// persisted board set. The caller owns the returned store and must Close it.
func openContainer(ctx context.Context, configPath string) (*container.Container, store.Store, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	c := container.New(ctx, st, container.Options{
		Canvas:     gesture.Canvas{W: cfg.Canvas.Width, H: cfg.Canvas.Height},
		HistoryCap: cfg.History.Limit,
		Logger:     loggerFromContext(ctx),
	})
	if err := c.Load(); err != nil {
		st.Close()
		return nil, nil, config.Config{}, err
	}
	return c, st, cfg, nil
}
