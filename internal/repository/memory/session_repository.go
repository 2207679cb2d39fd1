package memory

import (
	"time"

	"ai-tutoring-system/internal/domain"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps one SessionState per browser session with sliding expiry
type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository creates a store whose sessions expire after ttl of
// inactivity; expired entries are purged every ttl/6.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

// Create starts a fresh session under a random ID
func (r *SessionRepository) Create() *domain.SessionState {
	state := domain.NewSessionState(uuid.NewString())
	r.cache.Set(state.ID, state, cache.DefaultExpiration)
	return state
}

func (r *SessionRepository) Get(sessionID string) (*domain.SessionState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*domain.SessionState), true
	}
	return nil, false
}

// Touch renews the expiry of an active session
func (r *SessionRepository) Touch(state *domain.SessionState) {
	r.cache.Set(state.ID, state, cache.DefaultExpiration)
}

// Rotate re-keys state under a new random ID; the old ID stops resolving.
func (r *SessionRepository) Rotate(state *domain.SessionState) {
	old := state.ID
	state.ID = uuid.NewString()
	r.cache.Set(state.ID, state, cache.DefaultExpiration)
	r.cache.Delete(old)
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Count returns the number of live sessions
func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
