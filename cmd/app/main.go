package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"momoadmin/cmd"
	adminhttp "momoadmin/internal/adapters/in/http"
	"momoadmin/internal/notifier"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, ".env", logger); err != nil {
		stop()
		log.Fatal(err)
	}
}

// run wires the application and serves until ctx is cancelled or the HTTP
// server fails. Every resource opened before an error is closed on return.
func run(ctx context.Context, envFile string, logger *slog.Logger) error {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	tokens, err := adminhttp.ParseAdminTokens(configs.AdminTokens)
	if err != nil {
		return fmt.Errorf("parse ADMIN_TOKENS: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, err := cmd.OpenStore(configs, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeWithLog(logger, "store", store.Close)

	transport, err := cmd.OpenTransport(ctx, configs, logger)
	if err != nil {
		return fmt.Errorf("open notification transport: %w", err)
	}
	defer closeWithLog(logger, "notification transport", transport.Close)

	dispatcher := notifier.NewAsyncDispatcher(transport.Dispatcher, notifier.Config{
		Workers:   configs.NotifyWorkers,
		QueueSize: configs.NotifyQueueSize,
		Timeout:   configs.NotifyTimeout,
	}, logger)
	dispatcher.Start()
	defer func() {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer drainCancel()
		if closeErr := dispatcher.Close(drainCtx); closeErr != nil {
			logger.Error("notification dispatcher shutdown", "error", closeErr)
		}
	}()

	app := cmd.NewCompositionRoot(configs, store, dispatcher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e := newWebServer(app, tokens)
	serveErr := make(chan error, 1)
	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serveErr <- startErr
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}

	select {
	case err = <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
		return nil
	}
}

func newWebServer(app cmd.CompositionRoot, tokens adminhttp.AdminTokens) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	adminhttp.RegisterHandlers(e, app.CreateHTTPServer(), tokens)
	return e
}

func closeWithLog(logger *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("close "+name, "error", err)
	}
}
