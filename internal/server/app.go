// Package server runs the users HTTP API. It wires the users facade from
// configuration, handles graceful shutdown on SIGINT/SIGTERM/SIGQUIT and
// releases the cache backend on exit.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/AliKaner/mc-case/internal/client/config"
	"github.com/AliKaner/mc-case/internal/client/services"
	"github.com/AliKaner/mc-case/internal/logging"
	"github.com/AliKaner/mc-case/internal/server/httpapi"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	users   services.UserService
	closeFn func(context.Context) error
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	us, closeFn := services.Open(context.Background(), c, logger)

	return &App{config: c, logger: logger, users: us, closeFn: closeFn}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.ListenAddr, app.logger, app.users, app.config.DefaultPageSize)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closeFn(context.Background()); err != nil {
		app.logger.Warn(ctx, "shutdown", "err", err)
	}
}
