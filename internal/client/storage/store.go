// Package storage is a fail-safe JSON layer over a key-value repository.
//
// No method returns an error: read faults fall back to the caller's default
// and write faults are reported as false. Every fault is logged.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"

	"github.com/AliKaner/mc-case/internal/client/repositories/metadata"
	"github.com/AliKaner/mc-case/internal/logging"
)

const probeKey = "__storage_test__"

var errUnavailable = errors.New("storage unavailable")

type Store struct {
	repo   metadata.Repository
	logger logging.Logger
}

// New wraps repo. A nil repo yields a Store that is permanently unavailable.
func New(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "storage")}
}

func (s *Store) raw(ctx context.Context, key string) ([]byte, bool) {
	if s.repo == nil {
		return nil, false
	}
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "storage read failed", "key", key, "err", err)
		return nil, false
	}
	return b, b != nil
}

// Load decodes the value under key into dst. It reports false when the
// store is unavailable, the key is absent or the stored text does not parse.
func (s *Store) Load(ctx context.Context, key string, dst any) bool {
	b, ok := s.raw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.logger.Warn(ctx, "storage value is not valid JSON", "key", key, "err", err)
		return false
	}
	return true
}

// GetOr returns the decoded value under key, or def when it cannot be read.
func GetOr[T any](ctx context.Context, s *Store, key string, def T) T {
	var v T
	if !s.Load(ctx, key, &v) {
		return def
	}
	return v
}

// Keys returns the stored keys in sorted order, leaving out the
// availability probe. It is empty when the backend cannot be listed.
func (s *Store) Keys(ctx context.Context) []string {
	if s.repo == nil {
		return []string{}
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn(ctx, "storage list failed", "err", err)
		return []string{}
	}
	delete(all, probeKey)
	return slices.Sorted(maps.Keys(all))
}

func (s *Store) Set(ctx context.Context, key string, value any) bool {
	b, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn(ctx, "storage value is not serializable", "key", key, "err", err)
		return false
	}
	return s.write(ctx, "storage write failed", func() error {
		return s.repo.Set(ctx, key, b)
	}, "key", key)
}

func (s *Store) Remove(ctx context.Context, key string) bool {
	return s.write(ctx, "storage remove failed", func() error {
		return s.repo.Delete(ctx, key)
	}, "key", key)
}

// RemoveMany evicts all keys as one unit where the backend supports it.
func (s *Store) RemoveMany(ctx context.Context, keys ...string) bool {
	return s.write(ctx, "storage remove failed", func() error {
		return s.repo.DeleteMany(ctx, keys...)
	}, "keys", keys)
}

func (s *Store) Clear(ctx context.Context) bool {
	return s.write(ctx, "storage clear failed", func() error {
		return s.repo.Clear(ctx)
	})
}

// IsAvailable performs a throwaway write and remove of a probe key.
func (s *Store) IsAvailable(ctx context.Context) (ok bool) {
	if s.repo == nil {
		return false
	}
	defer func() {
		if err := s.repo.Delete(ctx, probeKey); err != nil {
			s.logger.Warn(ctx, "storage probe cleanup failed", "err", err)
			ok = false
		}
	}()

	if err := s.repo.Set(ctx, probeKey, []byte(`"probe"`)); err != nil {
		s.logger.Warn(ctx, "storage probe failed", "err", err)
		return false
	}
	return true
}

func (s *Store) write(ctx context.Context, msg string, fn func() error, args ...any) bool {
	err := errUnavailable
	if s.repo != nil {
		err = fn()
	}
	if err != nil {
		s.logger.Warn(ctx, msg, append(args, "err", err)...)
		return false
	}
	return true
}
