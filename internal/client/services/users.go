// Package services contains application services for the users cache.
// This file defines the data access facade: cached reads with network
// fallback, and writes that keep the local cache authoritative.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/AliKaner/mc-case/internal/client/cache"
	"github.com/AliKaner/mc-case/internal/client/client"
	"github.com/AliKaner/mc-case/internal/client/models"
	"github.com/AliKaner/mc-case/internal/client/query"
	"github.com/AliKaner/mc-case/internal/common"
	"github.com/AliKaner/mc-case/internal/logging"
)

// Messages returned in DeleteResult.
const (
	MsgDeleted             = "User deleted successfully"
	MsgDeletedLocallyOn5xx = "User deleted locally due to server error"
)

const defaultBackgroundWindow = 10 * time.Second

// DeleteResult reports the outcome of a delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Status summarizes the local cache for diagnostics.
type Status struct {
	StorageAvailable bool      `json:"storageAvailable"`
	Cached           bool      `json:"cached"`
	CachedUsers      int       `json:"cachedUsers"`
	CachedAt         time.Time `json:"cachedAt"`
	Tombstones       int       `json:"tombstones"`
	StoredKeys       []string  `json:"storedKeys"`
}

// Mutations are the write operations exposed to the UI.
//
// Contract:
//   - CreateUser: store the record locally and announce it to the server in
//     the background. Network failures never reject a create.
//   - UpdateUser / DeleteUser: call the server first. On success or a 5xx the
//     local cache is changed and the call succeeds. 4xx answers and an
//     unreachable server are returned as errors and leave the cache as is.
type Mutations interface {
	CreateUser(ctx context.Context, rec models.Record) (models.Record, error)
	UpdateUser(ctx context.Context, id models.ID, patch models.Patch) (models.Record, error)
	DeleteUser(ctx context.Context, id models.ID) (DeleteResult, error)
}

// UserService is the data access facade over the cache engine and the
// remote API.
type UserService interface {
	Mutations

	GetUsers(ctx context.Context, opts query.Options) (query.Page, error)
	GetUserByID(ctx context.Context, id models.ID) (models.Record, error)

	RestoreAll(ctx context.Context) error
	Deleted(ctx context.Context) []models.ID
	ClearCache(ctx context.Context)
	Status(ctx context.Context) Status

	// Wait blocks until background server calls have finished.
	Wait()
	Close(ctx context.Context) error
}

type userService struct {
	client client.Client
	cache  *cache.Engine
	logger logging.Logger

	bgWindow time.Duration
	wg       sync.WaitGroup
}

// NewUserService constructs a UserService bound to the given API client and
// cache engine.
func NewUserService(c client.Client, engine *cache.Engine, logger logging.Logger) UserService {
	return &userService{
		client:   c,
		cache:    engine,
		logger:   logger.With("component", "users"),
		bgWindow: defaultBackgroundWindow,
	}
}

// GetUsers answers from a valid cache when there is one. Otherwise it
// fetches the full list, caches the merged set and answers from that. When
// the fetch fails a still valid cache is used as fallback.
func (s *userService) GetUsers(ctx context.Context, opts query.Options) (query.Page, error) {
	if snap, ok := s.cache.Read(ctx); ok {
		s.logger.Debug(ctx, "using cached users", "count", len(snap.Users))
		return query.Process(snap.Users, opts), nil
	}

	users, err := s.client.FetchUsers(ctx)
	if err == nil {
		s.logger.Debug(ctx, "fetched users", "count", len(users))
		s.cache.Save(ctx, cache.Snapshot{Users: users})

		merged, ok := s.cache.Read(ctx)
		if ok {
			return query.Process(merged.Users, opts), nil
		}
		all := cache.MergeRecordSets(users, s.cache.Supplementary(), s.cache.Tombstones(ctx))
		return query.Process(all, opts), nil
	}

	s.logger.Warn(ctx, "fetching users failed", "err", err)
	if snap, ok := s.cache.Read(ctx); ok {
		return query.Process(snap.Users, opts), nil
	}
	return query.Page{}, common.WithCause(common.ErrFetchUsers, err)
}

// GetUserByID looks in the cache, then the supplementary records, then asks
// the server. Locally deleted identities are not found.
func (s *userService) GetUserByID(ctx context.Context, id models.ID) (models.Record, error) {
	if snap, ok := s.cache.Read(ctx); ok {
		if r, found := models.FindByID(snap.Users, id); found {
			return r, nil
		}
	}

	for _, d := range s.cache.Tombstones(ctx) {
		if d.Equal(id) {
			return models.Record{}, common.WithCause(common.ErrFetchUser,
				fmt.Errorf("%w: user %s was deleted", common.ErrorNotFound, id))
		}
	}

	if r, found := models.FindByID(s.cache.Supplementary(), id); found {
		return r, nil
	}

	r, err := s.client.FetchUser(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "fetching user failed", "id", id.String(), "err", err)
		if client.IsNotFound(err) {
			err = fmt.Errorf("%w: %w", common.ErrorNotFound, err)
		}
		return models.Record{}, common.WithCause(common.ErrFetchUser, err)
	}
	return r, nil
}

func (s *userService) CreateUser(ctx context.Context, rec models.Record) (models.Record, error) {
	if rec.ID.IsZero() {
		return models.Record{}, common.WithCause(common.ErrCreateUser,
			fmt.Errorf("%w: user id is required", common.ErrorValidation))
	}

	// A create for an identity that is already cached replaces that record
	// where it stands.
	ok := s.cache.Mutate(ctx, func(users []models.Record) ([]models.Record, bool) {
		i := slices.IndexFunc(users, func(u models.Record) bool { return u.ID.Equal(rec.ID) })
		if i < 0 {
			return append(users, rec), true
		}
		users[i] = rec
		return users, true
	})
	if !ok {
		s.logger.Warn(ctx, "user created but not cached", "id", rec.ID.String())
	}

	s.background("announce created user", func(ctx context.Context) error {
		_, err := s.client.CreateUser(ctx, rec)
		return err
	})
	return rec, nil
}

func (s *userService) UpdateUser(ctx context.Context, id models.ID, patch models.Patch) (models.Record, error) {
	remote, err := s.client.PatchUser(ctx, id, patch)
	if err != nil {
		if !client.IsServerError(err) {
			return models.Record{}, writeError(common.ErrUpdateUser, err)
		}
		s.logger.Warn(ctx, "server failed to update user, updating locally", "id", id.String(), "err", err)
	}

	var updated models.Record
	found := false
	s.cache.Mutate(ctx, func(users []models.Record) ([]models.Record, bool) {
		if users == nil {
			return nil, false
		}
		out := make([]models.Record, len(users))
		for i, u := range users {
			if u.ID.Equal(id) {
				u = patch.Apply(u)
				updated, found = u, true
			}
			out[i] = u
		}
		return out, true
	})

	switch {
	case found:
		return updated, nil
	case err == nil:
		return remote, nil
	default:
		return patch.Apply(models.Record{ID: id}), nil
	}
}

func (s *userService) DeleteUser(ctx context.Context, id models.ID) (DeleteResult, error) {
	res := DeleteResult{Success: true, Message: MsgDeleted}

	if err := s.client.DeleteUser(ctx, id); err != nil {
		if !client.IsServerError(err) {
			return DeleteResult{}, writeError(common.ErrDeleteUser, err)
		}
		s.logger.Warn(ctx, "server failed to delete user, deleting locally", "id", id.String(), "err", err)
		res.Message = MsgDeletedLocallyOn5xx
	}

	if !s.cache.SoftDelete(ctx, id) {
		s.logger.Warn(ctx, "user deleted but tombstone not saved", "id", id.String())
	}
	return res, nil
}

func (s *userService) RestoreAll(ctx context.Context) error {
	if !s.cache.RestoreAll(ctx) {
		return common.ErrRestoreUsers
	}
	return nil
}

func (s *userService) Deleted(ctx context.Context) []models.ID {
	return s.cache.Tombstones(ctx)
}

func (s *userService) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
}

func (s *userService) Status(ctx context.Context) Status {
	st := Status{
		StorageAvailable: s.cache.Available(ctx),
		Tombstones:       len(s.cache.Tombstones(ctx)),
		StoredKeys:       s.cache.StoredKeys(ctx),
	}
	if snap, ok := s.cache.Read(ctx); ok {
		st.Cached = true
		st.CachedUsers = len(snap.Users)
		st.CachedAt = time.UnixMilli(snap.Timestamp)
	}
	return st
}

func (s *userService) Wait() {
	s.wg.Wait()
}

func (s *userService) Close(ctx context.Context) error {
	s.Wait()
	return s.client.Close()
}

// background runs fn detached from the caller with its own timeout. Its
// outcome is only logged.
func (s *userService) background(name string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.bgWindow)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Warn(ctx, name+" failed", "err", err)
		}
	}()
}

// writeError keeps status and context errors as they are, reports an
// unreachable server with the network message and wraps anything else in
// fallback.
func writeError(fallback, err error) error {
	var se *client.StatusError
	switch {
	case errors.As(err, &se):
		return err
	case errors.Is(err, client.ErrUnavailable):
		return common.WithCause(client.ErrUnavailable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return common.WithCause(fallback, err)
	}
}
