// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/survey"
)

var ErrNotFound = errors.New("session not found")

type entry struct {
	mu    sync.Mutex
	state *survey.State

	// lastSeen is guarded by Manager.mu, not mu
	lastSeen time.Time
}

// Manager keeps one survey.State per respondent session. Sessions share
// nothing but the store behind the flow.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	flow     *survey.Flow
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a manager whose sessions expire after ttl of
// inactivity. A zero ttl disables expiry.
func NewManager(flow *survey.Flow, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		flow:     flow,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session at the first question
func (m *Manager) Create() string {
	id := uuid.NewString()
	now := m.now()

	m.mu.Lock()
	m.sweepLocked(now)
	m.sessions[id] = &entry{state: m.flow.NewState(), lastSeen: now}
	count := len(m.sessions)
	m.mu.Unlock()

	slog.Info("session created", "session_id", id, "active_sessions", count)
	return id
}

// With runs fn with exclusive access to the session's state
func (m *Manager) With(id string, fn func(*survey.State) error) error {
	now := m.now()

	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok && m.expired(e, now) {
		delete(m.sessions, id)
		ok = false
	}
	if ok {
		e.lastSeen = now
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// Len returns the number of tracked sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) expired(e *entry, now time.Time) bool {
	if m.ttl <= 0 {
		return false
	}
	return now.Sub(e.lastSeen) > m.ttl
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, id)
		}
	}
}
