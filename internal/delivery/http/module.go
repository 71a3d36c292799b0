package http

import (
	"go.uber.org/fx"

	"saraban-stamp/internal/delivery/http/handler"
	"saraban-stamp/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewRenderHandler,
		handler.NewHealthHandler,
		handler.NewLogHandler,
		router.NewRouter,
	),
)
