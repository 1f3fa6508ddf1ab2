// Package session holds per-browser quiz state in process memory. Nothing
// is persisted: a restart clears every session, which matches the product's
// single-sitting quiz flow.
package session

import (
	"sync"

	"github.com/google/uuid"

	"flashquiz-backend/internal/models"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]*models.QuizSession
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*models.QuizSession)}
}

// Get returns the session for id, creating an empty one (and a fresh id when
// id is blank or unknown) on first contact. The returned id is always valid.
func (s *Store) Get(id string) (string, *models.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return id, sess
		}
	}

	id = uuid.New().String()
	sess := models.NewQuizSession()
	s.sessions[id] = sess
	return id, sess
}

// Reset replaces the session wholesale with an empty one: all fields
// together, never field by field.
func (s *Store) Reset(id string) *models.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := models.NewQuizSession()
	s.sessions[id] = sess
	return sess
}

// Delete removes a session entirely.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
