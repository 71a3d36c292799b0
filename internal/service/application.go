package service

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/fx"

	"saraban-stamp/internal/config"
	deliveryhttp "saraban-stamp/internal/delivery/http"
	"saraban-stamp/internal/engine"
	"saraban-stamp/internal/infrastructure/asset"
	"saraban-stamp/internal/infrastructure/database"
	"saraban-stamp/internal/infrastructure/httpclient"
	"saraban-stamp/internal/infrastructure/logger"
	"saraban-stamp/internal/infrastructure/redis"
	"saraban-stamp/internal/infrastructure/repository"
	"saraban-stamp/internal/server"
	"saraban-stamp/internal/usecase"
)

// Version is set during build via ldflags
var Version = "dev"

// Modules is the full HTTP service graph shared by the console and service entry points.
var Modules = fx.Options(
	// Configuration
	config.Module,

	// Infrastructure
	logger.Module,
	database.Module,
	redis.Module,
	httpclient.Module,
	asset.Module,
	repository.Module,

	// Rendering
	engine.Module,

	// Business Logic
	usecase.Module,

	// Delivery
	deliveryhttp.Module,

	// Server
	server.Module,
)

// Application wraps the fx.App for service management
type Application struct {
	app      *fx.App
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
	stopOnce sync.Once
}

// NewApplication creates a new Application instance
func NewApplication() *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		app: fx.New(
			fx.Provide(func() context.Context { return ctx }),
			Modules,
		),
		ctx:      ctx,
		cancel:   cancel,
		doneChan: make(chan struct{}),
	}
}

// Run starts the application and blocks until a termination signal arrives or
// Shutdown is called.
func (a *Application) Run() {
	defer close(a.doneChan)

	if err := a.app.Start(a.ctx); err != nil {
		log.Printf("Failed to start application: %v", err)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		a.Shutdown()
	case <-a.ctx.Done():
	}
}

// Shutdown stops the application; it is safe to call more than once.
func (a *Application) Shutdown() {
	a.stopOnce.Do(func() {
		a.cancel()
		ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		if err := a.app.Stop(ctx); err != nil {
			log.Printf("Failed to stop application cleanly: %v", err)
		}
	})
}

// Wait blocks until Run returns.
func (a *Application) Wait() {
	<-a.doneChan
}
