// Package registry holds the in-memory index of live sessions. The registry
// lock only guards the map; per-session state is guarded by each session's
// own mutex, so operations on different sessions never contend here.
package registry

import (
	"sort"
	"sync"

	"github.com/louisbranch/seabattle.space/internal/game/domain/session"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// Registry is a concurrency-safe map of session ID to session handle.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{sessions: make(map[string]*session.Session)}
}

// Add registers a session under its ID. Registering an ID twice is an error;
// the caller decides whether to retry with a fresh ID.
func (r *Registry) Add(s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID()]; exists {
		return apperrors.WithMetadata(apperrors.CodeGameCreateFailed,
			"session id already registered",
			map[string]string{"game_id": s.ID()})
	}
	r.sessions[s.ID()] = s
	return nil
}

// Get returns the session registered under id.
func (r *Registry) Get(id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeGameNotFound,
			"game not found", map[string]string{"game_id": id})
	}
	return s, nil
}

// Remove drops the session registered under id. Removing an unknown id is a
// no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// OpenLobbies lists the publicly joinable sessions, most recently created
// first. Each session is summarized under its own lock after the registry
// read lock is released.
func (r *Registry) OpenLobbies() []session.Summary {
	r.mu.RLock()
	handles := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		handles = append(handles, s)
	}
	r.mu.RUnlock()

	var out []session.Summary
	for _, s := range handles {
		if s.OpenLobby() {
			out = append(out, s.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
