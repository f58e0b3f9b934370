package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"caseboard/internal/client"
)

// importSession holds a validated batch waiting for user confirmation.
type importSession struct {
	id      string
	clients []client.Client
	expiry  *time.Timer
}

// importSessions tracks staged imports by id. Sessions expire after the
// configured TTL so an abandoned preview does not hold memory forever.
type importSessions struct {
	mu       sync.Mutex
	sessions map[string]*importSession
	ttl      time.Duration
}

func newImportSessions(ttl time.Duration) *importSessions {
	return &importSessions{
		sessions: make(map[string]*importSession),
		ttl:      ttl,
	}
}

// stage stores a validated batch and returns its session id.
func (s *importSessions) stage(clients []client.Client) string {
	id := uuid.New().String()
	sess := &importSession{
		id:      id,
		clients: clients,
	}
	s.mu.Lock()
	sess.expiry = time.AfterFunc(s.ttl, func() { s.drop(id) })
	s.sessions[id] = sess
	s.mu.Unlock()
	return id
}

// take removes and returns the staged batch for id.
func (s *importSessions) take(id string) ([]client.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.expiry.Stop()
	delete(s.sessions, id)
	return sess.clients, true
}

// drop discards the staged batch for id if it is still present.
func (s *importSessions) drop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.expiry.Stop()
	delete(s.sessions, id)
	return true
}

// stop cancels all pending expiry timers.
func (s *importSessions) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.expiry.Stop()
		delete(s.sessions, id)
	}
}
