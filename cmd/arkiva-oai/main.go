package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/slsfi/arkiva-oai/internal/config"
	"github.com/slsfi/arkiva-oai/internal/infrastructure/providers"
	"github.com/slsfi/arkiva-oai/internal/present/rest"
	"github.com/slsfi/arkiva-oai/internal/service"
)

const (
	serviceName = "arkiva-oai"
	version     = "2.0.0"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	configPath := os.Getenv("ARKIVA_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Server.EnableTrace {
		cleanup, err := service.SetupTraceProvider(ctx, conf.Server.TraceEndpoint, serviceName, version)
		if err != nil {
			slog.Error("Failed to setup trace provider", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := providers.NewDatabase(conf.Database)
	if err != nil {
		slog.Error("Failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	arkiva := providers.NewArkivaUsecase(db, conf.Archive)

	library, err := providers.NewLibraryUsecase(db, conf.Library)
	if err != nil {
		slog.Error("Failed to connect library database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true

	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler := rest.NewHandler(conf.Server.BaseURL, arkiva, library, providers.NewResponseCache(conf.Cache))
	handler.RegisterRoutes(e)

	go func() {
		err := e.Start(conf.Server.Listen)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Failed to shutdown gracefully", slog.String("error", err.Error()))
	}
}
