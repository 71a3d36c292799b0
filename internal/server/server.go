package server

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/delivery/http/router"
)

var Module = fx.Module("server",
	fx.Invoke(NewServer),
)

// NewServer binds the HTTP port on start so that a port already in use fails
// the application start instead of only being logged, then serves in the
// background until stop.
func NewServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	r *router.Router,
	logger *zap.Logger,
) error {
	app := r.Setup()
	addr := fmt.Sprintf(":%d", cfg.App.Port)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var listen net.ListenConfig
			ln, err := listen.Listen(ctx, "tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}

			logger.Info("Starting HTTP server",
				zap.String("address", ln.Addr().String()),
				zap.String("env", cfg.App.Env),
			)

			go func() {
				if err := app.Listener(ln); err != nil {
					logger.Error("HTTP server stopped with error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server")
			return app.ShutdownWithContext(ctx)
		},
	})

	return nil
}
