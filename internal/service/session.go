package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/calovate/backend/internal/models"
)

// Session identifies the authenticated user and carries a snapshot of their
// goals. It is created at authentication and passed explicitly into the food
// log constructor; there is no ambient current-user state anywhere.
type Session struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Goals  models.NutritionGoals
}

// SessionManager hands out one food log per authenticated user for the
// lifetime of the process, so repeated requests from the same user share the
// same in-memory mirror.
type SessionManager struct {
	mu    sync.Mutex
	store EntryStore
	logs  map[uuid.UUID]*FoodLog
}

func NewSessionManager(store EntryStore) *SessionManager {
	return &SessionManager{
		store: store,
		logs:  make(map[uuid.UUID]*FoodLog),
	}
}

// Log returns the food log for the session's user, creating it on first use.
func (m *SessionManager) Log(sess *Session) *FoodLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.logs[sess.UserID]; ok {
		return l
	}
	l := NewFoodLog(sess, m.store)
	m.logs[sess.UserID] = l
	return l
}
