package fx

import (
	"context"
	"errors"
	"net"
	"net/http"

	"phonebook/config"
	"phonebook/internal/logger"
	"phonebook/internal/middleware"
	"phonebook/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
		newHTTPServer,
	),
	fx.Invoke(
		setupRoutes,
		startServer,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.Default()
}

func newHTTPServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

func setupRoutes(router *gin.Engine, handler *routes.Handler) {
	router.Use(middleware.CORSMiddleware())
	handler.Register(router)
}

func startServer(lc fx.Lifecycle, cfg *config.Config, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info().
				Str("address", srv.Addr).
				Str("environment", cfg.App.Environment).
				Str("base_url", cfg.App.BaseURL).
				Msg("server starting")
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("server stopping")
			return srv.Shutdown(ctx)
		},
	})
}
