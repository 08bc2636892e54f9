package http

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"tally/config"
	"tally/internal/delivery/http/middleware"
	"tally/internal/delivery/http/router"
	"tally/internal/delivery/http/router/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// nopLifecycle satisfies fx.Lifecycle without an fx app.
type nopLifecycle struct{}

func (nopLifecycle) Append(fx.Hook) {}

func TestNewServer_AppliesConfiguredTimeouts(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Port = 8000
	cfg.HTTP.Timeouts.ReadTimeout = 5 * time.Second
	cfg.HTTP.Timeouts.ReadHeaderTimeout = 2 * time.Second
	cfg.HTTP.Timeouts.WriteTimeout = 10 * time.Second
	cfg.HTTP.Timeouts.IdleTimeout = 60 * time.Second

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	served, err := NewServer(HTTPParams{
		Lifecycle:        nopLifecycle{},
		Config:           cfg,
		Logger:           logger,
		ErrorMiddleware:  middleware.NewErrorMiddleware(logger),
		LoggerMiddleware: middleware.NewLoggerMiddleware(logger, cfg),
		RouterParams: router.RouterParams{
			UserHandler:        handler.NewUserHandler(nil, logger),
			CalculationHandler: handler.NewCalculationHandler(nil, logger),
			ArithmeticHandler:  handler.NewArithmeticHandler(logger),
			AuthMiddleware:     middleware.NewAuthMiddleware(nil),
		},
	})
	require.NoError(t, err)

	srv, ok := served.(*httpServer)
	require.True(t, ok)

	assert.Equal(t, 5*time.Second, srv.server.Server.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.server.Server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, srv.server.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, srv.server.Server.IdleTimeout)
}
