// Package cache owns the persisted user snapshot: merging with the
// supplementary records, expiry and tombstones for local deletions.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/AliKaner/mc-case/internal/client/models"
	"github.com/AliKaner/mc-case/internal/client/seed"
	"github.com/AliKaner/mc-case/internal/client/storage"
	"github.com/AliKaner/mc-case/internal/logging"
	"github.com/AliKaner/mc-case/internal/timex"
)

// Storage keys.
const (
	KeyUsersData      = "users_data"
	KeyCacheTimestamp = "users_cache_timestamp"
	KeyDeletedUsers   = "deleted_users"
)

const DefaultTTL = 5 * time.Minute

// Snapshot is the persisted, merged record set.
type Snapshot struct {
	Users     []models.Record `json:"users"`
	Total     *int            `json:"total,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

type Engine struct {
	mu            sync.Mutex
	store         *storage.Store
	supplementary []models.Record
	now           func() time.Time
	ttl           time.Duration
	logger        logging.Logger
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithSupplementary replaces the bundled seed records.
func WithSupplementary(records []models.Record) Option {
	return func(e *Engine) { e.supplementary = records }
}

func New(store *storage.Store, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		supplementary: seed.Users(),
		now:           time.Now,
		ttl:           DefaultTTL,
		logger:        logger.With("component", "cache"),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Supplementary returns a copy of the supplementary records.
func (e *Engine) Supplementary() []models.Record {
	out := make([]models.Record, len(e.supplementary))
	for i, r := range e.supplementary {
		out[i] = r.Clone()
	}
	return out
}

// Save merges snap.Users with the supplementary records, drops tombstoned
// identities and persists the result with a fresh timestamp.
func (e *Engine) Save(ctx context.Context, snap Snapshot) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.save(ctx, snap)
}

func (e *Engine) save(ctx context.Context, snap Snapshot) bool {
	ts := e.now().UnixMilli()
	snap.Users = MergeRecordSets(snap.Users, e.supplementary, e.tombstones(ctx))
	snap.Timestamp = ts

	if !e.store.Set(ctx, KeyUsersData, snap) {
		e.logger.Error(ctx, "failed to save users cache")
		return false
	}
	if !e.store.Set(ctx, KeyCacheTimestamp, ts) {
		e.logger.Error(ctx, "failed to save users cache timestamp")
		return false
	}
	return true
}

// Read returns the current snapshot. A missing or expired snapshot yields
// false; an expired one is evicted together with its tombstones.
func (e *Engine) Read(ctx context.Context) (*Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.read(ctx)
}

func (e *Engine) read(ctx context.Context) (*Snapshot, bool) {
	var snap Snapshot
	if !e.store.Load(ctx, KeyUsersData, &snap) {
		return nil, false
	}
	var ts int64
	if !e.store.Load(ctx, KeyCacheTimestamp, &ts) {
		return nil, false
	}

	if timex.MillisSince(e.now(), ts) > e.ttl.Milliseconds() {
		e.logger.Debug(ctx, "users cache expired", "timestamp", ts)
		e.clear(ctx)
		return nil, false
	}
	return &snap, true
}

// Clear evicts the snapshot, its timestamp and the tombstones as one unit.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clear(ctx)
}

func (e *Engine) clear(ctx context.Context) bool {
	if !e.store.RemoveMany(ctx, KeyUsersData, KeyCacheTimestamp, KeyDeletedUsers) {
		e.logger.Error(ctx, "failed to clear users cache")
		return false
	}
	return true
}

// Tombstones returns the locally deleted identities.
func (e *Engine) Tombstones(ctx context.Context) []models.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tombstones(ctx)
}

func (e *Engine) tombstones(ctx context.Context) []models.ID {
	return storage.GetOr(ctx, e.store, KeyDeletedUsers, []models.ID{})
}

// RestoreAll forgets every tombstone and evicts the snapshot so the next
// read rebuilds it, bringing supplementary records back.
func (e *Engine) RestoreAll(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.store.Remove(ctx, KeyDeletedUsers) {
		e.logger.Error(ctx, "failed to clear deleted users")
		return false
	}
	return e.clear(ctx)
}

// SoftDelete tombstones id and drops it from the current snapshot. Deleting
// an identity that is already tombstoned is a successful no-op.
func (e *Engine) SoftDelete(ctx context.Context, id models.ID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	deleted := e.tombstones(ctx)
	if containsID(deleted, id) {
		return true
	}

	deleted = append(deleted, id)
	if !e.store.Set(ctx, KeyDeletedUsers, deleted) {
		e.logger.Error(ctx, "failed to save deleted users", "id", id.String())
		return false
	}

	snap, ok := e.read(ctx)
	if !ok {
		return true
	}
	snap.Users = withoutID(snap.Users, id)
	return e.save(ctx, *snap)
}

// Mutate applies fn to the current records and saves the result, all under
// the engine lock. Without a snapshot fn receives nil. fn returning false
// leaves the cache untouched.
func (e *Engine) Mutate(ctx context.Context, fn func(users []models.Record) ([]models.Record, bool)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	var current []models.Record
	snap, ok := e.read(ctx)
	if ok {
		current = snap.Users
	}

	next, apply := fn(current)
	if !apply {
		return true
	}
	return e.save(ctx, Snapshot{Users: next})
}

// StoredKeys lists every key currently held by the backing store.
func (e *Engine) StoredKeys(ctx context.Context) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Keys(ctx)
}

// Available reports whether the underlying store accepts writes.
func (e *Engine) Available(ctx context.Context) bool {
	return e.store.IsAvailable(ctx)
}
