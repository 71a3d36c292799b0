package engine

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/engine/stamp"
	"saraban-stamp/internal/infrastructure/asset"
	"saraban-stamp/internal/infrastructure/document"
)

var Module = fx.Module("engine",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg *config.Config, fonts *asset.FontCache, store *asset.Store, logger *zap.Logger) Engine {
	zone := cfg.Location()
	return New(fonts, store, Options{
		PageSize: document.PageSizeByName(cfg.Render.PageSize),
		Style:    stamp.DefaultStyle(),
		Clock:    func() time.Time { return time.Now().In(zone) },
	}, logger)
}
