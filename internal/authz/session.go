package authz

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// SnapshotLoader resolves a fresh visibility snapshot for a user.
type SnapshotLoader interface {
	Resolve(ctx context.Context, userID int64) *Snapshot
}

// SessionManager caches one resolved snapshot per authenticated user and owns
// its invalidation. Invariants:
//   - a snapshot is never served across an auth-state change (sign-in,
//     sign-out, token refresh all invalidate first);
//   - when loads overlap, the snapshot stored is the one whose load STARTED
//     last, regardless of completion order.
type SessionManager struct {
	loader SnapshotLoader
	cache  *gocache.Cache
	logger *slog.Logger

	mu   sync.Mutex
	gens map[int64]uint64
}

func NewSessionManager(loader SnapshotLoader, ttl, cleanupInterval time.Duration, logger *slog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 15 * time.Minute
	}
	return &SessionManager{
		loader: loader,
		cache:  gocache.New(ttl, cleanupInterval),
		logger: logger,
		gens:   make(map[int64]uint64),
	}
}

func cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Snapshot returns the cached snapshot, loading one if absent or expired.
func (m *SessionManager) Snapshot(ctx context.Context, userID int64) *Snapshot {
	if cached, ok := m.cache.Get(cacheKey(userID)); ok {
		if snapshot, ok := cached.(*Snapshot); ok {
			return snapshot
		}
	}
	return m.Load(ctx, userID)
}

// Peek returns the cached snapshot without triggering a load.
func (m *SessionManager) Peek(userID int64) (*Snapshot, bool) {
	cached, ok := m.cache.Get(cacheKey(userID))
	if !ok {
		return nil, false
	}
	snapshot, ok := cached.(*Snapshot)
	return snapshot, ok
}

// Load resolves a fresh snapshot. If another load for the same user started
// after this one, the result is returned to the caller but not cached, so the
// cache always reflects the latest-started load.
func (m *SessionManager) Load(ctx context.Context, userID int64) *Snapshot {
	m.mu.Lock()
	m.gens[userID]++
	gen := m.gens[userID]
	m.mu.Unlock()

	snapshot := m.loader.Resolve(ctx, userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[userID] != gen {
		m.logger.Debug("session load superseded, discarding result",
			"user_id", userID,
			"generation", gen,
			"current_generation", m.gens[userID])
		return snapshot
	}
	m.cache.Set(cacheKey(userID), snapshot, gocache.DefaultExpiration)
	return snapshot
}

// HasFeature answers the screen-gating question against the cached snapshot.
func (m *SessionManager) HasFeature(ctx context.Context, userID int64, code string) bool {
	return m.Snapshot(ctx, userID).HasFeature(code)
}

// Invalidate drops the user's snapshot and supersedes any in-flight load.
// Called on sign-out, sign-in, token refresh, and per-user visibility edits.
func (m *SessionManager) Invalidate(userID int64) {
	m.mu.Lock()
	m.gens[userID]++
	m.mu.Unlock()
	m.cache.Delete(cacheKey(userID))
}

// InvalidateAll drops every snapshot. Called after role-matrix or feature
// catalog edits, which can change any user's visibility.
func (m *SessionManager) InvalidateAll() {
	m.mu.Lock()
	for userID := range m.gens {
		m.gens[userID]++
	}
	m.mu.Unlock()
	m.cache.Flush()
}
