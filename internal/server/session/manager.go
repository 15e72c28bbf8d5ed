// Package session keeps the sessions handed out by the mock endpoint's idoit.login.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SessionManagerContract interface {
	Create(username string) string
	Lookup(id string) (string, bool)
	Delete(id string) bool
	StartCleanup(ctx context.Context, interval time.Duration)
}

type entry struct {
	username string
	expiry   time.Time
}

type SessionManager struct {
	sessions sync.Map
	ttl      time.Duration
	now      func() time.Time
}

func New(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl: ttl,
		now: time.Now,
	}
}

// Create opens a session for username and returns its id.
func (sm *SessionManager) Create(username string) string {
	id := uuid.New().String()
	sm.sessions.Store(id, entry{username: username, expiry: sm.now().Add(sm.ttl)})
	return id
}

// Lookup returns the owner of a live session and extends its lifetime.
func (sm *SessionManager) Lookup(id string) (string, bool) {
	v, ok := sm.sessions.Load(id)
	if !ok {
		return "", false
	}
	e := v.(entry)
	if sm.now().After(e.expiry) {
		sm.sessions.Delete(id)
		return "", false
	}
	e.expiry = sm.now().Add(sm.ttl)
	sm.sessions.Store(id, e)
	return e.username, true
}

func (sm *SessionManager) Delete(id string) bool {
	_, loaded := sm.sessions.LoadAndDelete(id)
	return loaded
}

func (sm *SessionManager) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sm.cleanup()
			}
		}
	}()
}

func (sm *SessionManager) cleanup() {
	now := sm.now()
	sm.sessions.Range(func(key, value any) bool {
		if now.After(value.(entry).expiry) {
			sm.sessions.Delete(key)
		}
		return true
	})
}
