// Package main is the entry point for the award flight search service.
//
//	@title						Award Flight Finder API
//	@version					1.0.0
//	@description				Searches seats.aero award availability across loyalty programs and ranks offers by miles, cents per point or date.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/award-search/award-flight-finder/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/award-search/award-flight-finder/docs"

	awardhttp "github.com/award-search/award-flight-finder/internal/adapter/http"
	"github.com/award-search/award-flight-finder/internal/adapter/http/middleware"
	"github.com/award-search/award-flight-finder/internal/app"
	"github.com/award-search/award-flight-finder/internal/config"
	"github.com/award-search/award-flight-finder/internal/infrastructure/logger"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: logger.DefaultServiceName,
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.New(ctx, cfg, log, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize award search")
	}
	defer pipeline.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Zerolog())
	awardhttp.RegisterRoutes(e, awardhttp.NewAwardHandler(pipeline.UseCase, pipeline.Catalog))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	gracefulShutdown(e, log)
}

// gracefulShutdown drains in-flight searches before returning.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
