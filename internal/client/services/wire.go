package services

import (
	"context"
	"errors"

	"github.com/AliKaner/mc-case/internal/client/cache"
	"github.com/AliKaner/mc-case/internal/client/client"
	"github.com/AliKaner/mc-case/internal/client/config"
	"github.com/AliKaner/mc-case/internal/client/repositories/metadata"
	"github.com/AliKaner/mc-case/internal/client/storage"
	"github.com/AliKaner/mc-case/internal/logging"
)

// Open builds the users facade described by cfg. A storage backend that
// cannot be opened is logged and the facade runs without a cache. The
// returned function waits for background calls and releases the API client
// and the storage backend.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (UserService, func(context.Context) error) {
	var repo metadata.Repository
	st, err := client.OpenStorage(ctx, cfg)
	if err != nil {
		logger.Warn(ctx, "local storage unavailable, running without cache", "driver", cfg.StorageDriver, "err", err)
	} else {
		repo = st.Metadata
	}

	engine := cache.New(storage.New(repo, logger), logger, cache.WithTTL(cfg.CacheTTL))
	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	us := NewUserService(api, engine, logger)

	closeFn := func(ctx context.Context) error {
		errs := []error{us.Close(ctx)}
		if st != nil {
			errs = append(errs, st.Close())
		}
		return errors.Join(errs...)
	}
	return us, closeFn
}
