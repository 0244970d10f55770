package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AliKaner/mc-case/internal/client/config"
	"github.com/AliKaner/mc-case/internal/client/query"
	"github.com/AliKaner/mc-case/internal/client/services"
	"github.com/AliKaner/mc-case/internal/logging"
)

// view is the listing state kept between commands.
type view struct {
	page   int
	limit  int
	search string
	sort   string
	order  string
}

type App struct {
	config  *config.Config
	users   services.UserService
	closeFn func(context.Context) error
	logger  logging.Logger

	reader  *bufio.Reader
	prompts io.Writer

	view view
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stderr, c.LogLevel)
	us, closeFn := services.Open(ctx, c, logger)

	var prompts io.Writer = os.Stdout
	if !isTerminal(int(os.Stdin.Fd())) {
		prompts = io.Discard
	}

	return &App{
		config:  c,
		users:   us,
		closeFn: closeFn,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		prompts: prompts,
		view:    defaultView(c.DefaultPageSize),
	}, nil
}

func defaultView(limit int) view {
	if limit < 1 {
		limit = query.DefaultLimit
	}
	return view{
		page:  query.DefaultPage,
		limit: limit,
		sort:  query.DefaultSortField,
		order: query.OrderAsc,
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	if a.closeFn == nil {
		return
	}
	if err := a.closeFn(ctx); err != nil {
		a.logger.Warn(ctx, "shutdown", "err", err)
	}
}
