package asset

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/infrastructure/redis"
)

var Module = fx.Module("asset",
	fx.Provide(
		NewFetcher,
		provideSharedCache,
		NewStoreFromConfig,
		NewFontCache,
	),
	fx.Invoke(registerWarmUp),
)

// provideSharedCache exposes the Redis client as the shared tier, or nothing
// when Redis is disabled.
func provideSharedCache(client *redis.RedisClient) SharedCache {
	if client == nil {
		return nil
	}
	return client
}

func NewStoreFromConfig(cfg *config.Config, fetcher Fetcher, shared SharedCache, logger *zap.Logger) *Store {
	return NewStore(fetcher, shared, map[string]string{
		FontAsset:   cfg.Assets.FontURL,
		EmblemAsset: cfg.Assets.EmblemURL,
	}, StoreOptions{
		FetchTimeout: cfg.Assets.FetchTimeout,
		SharedTTL:    cfg.Assets.CacheTTL,
		KeyPrefix:    cfg.Assets.CachePrefix,
	}, logger)
}

// registerWarmUp fetches assets in the background on start. A failure is only
// logged; the first render fetches again.
func registerWarmUp(lc fx.Lifecycle, cfg *config.Config, store *Store, fonts *FontCache, logger *zap.Logger) {
	if !cfg.Assets.WarmOnStart {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := store.Warm(context.Background()); err != nil {
					logger.Warn("Asset warm-up failed", zap.Error(err))
					return
				}
				if _, err := fonts.Font(context.Background()); err != nil {
					logger.Warn("Font warm-up failed", zap.Error(err))
					return
				}
				logger.Info("Assets warmed up")
			}()
			return nil
		},
	})
}
