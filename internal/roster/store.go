// Package roster holds the authoritative in-memory client collection and
// mirrors every mutation to durable storage.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"caseboard/internal/client"
	"caseboard/internal/roster/snapshot"
)

// ErrDuplicateID is returned when adding a client whose id is already held.
var ErrDuplicateID = errors.New("client id already exists")

// Store owns the ordered roster. Mutations persist the full collection to the
// snapshot backend before returning; persistence failures are logged and
// swallowed so the in-memory roster stays usable when storage misbehaves.
type Store struct {
	mu      sync.RWMutex
	clients []client.Client
	snap    snapshot.Snapshot
	logger  *slog.Logger
}

// Open loads the stored roster into a new store. A missing snapshot yields an
// empty roster; an unreadable one is an error so corruption is surfaced at
// startup instead of being silently overwritten.
func Open(snap snapshot.Snapshot, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	clients, ok, err := snap.Load()
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	if !ok {
		clients = nil
	}
	return &Store{clients: clients, snap: snap, logger: logger}, nil
}

// Clients returns a copy of the roster in insertion order.
func (s *Store) Clients() []client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]client.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Len returns the current roster size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Get returns the client with the given id.
func (s *Store) Get(id string) (client.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return client.Client{}, false
}

// Add appends one client to the roster.
func (s *Store) Add(c client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(c.ID) != -1 {
		return ErrDuplicateID
	}
	s.clients = append(s.clients, c)
	s.persistLocked()
	return nil
}

// BulkAdd appends a validated batch in order. The batch is rejected whole if
// any id collides with the roster or with another batch member, keeping the
// all-or-nothing import contract.
func (s *Store) BulkAdd(batch []client.Client) error {
	if len(batch) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(batch))
	for _, c := range batch {
		if _, dup := seen[c.ID]; dup || s.indexOf(c.ID) != -1 {
			return ErrDuplicateID
		}
		seen[c.ID] = struct{}{}
	}
	s.clients = append(s.clients, batch...)
	s.persistLocked()
	return nil
}

// UpdateStatus sets the status of the client with the given id and refreshes
// its lastUpdated stamp. An unknown id is a silent no-op; nothing is
// persisted and no record changes.
func (s *Store) UpdateStatus(id string, status client.Status) error {
	if !client.ValidStatus(string(status)) {
		return fmt.Errorf("%q is not a recognized status", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i == -1 {
		return nil
	}
	s.clients[i].Status = status
	s.clients[i].Touch()
	s.persistLocked()
	return nil
}

// UpdateUnits sets the units used for the client with the given id. Values
// outside [0, MaxUnits] are rejected. An unknown id is a silent no-op.
func (s *Store) UpdateUnits(id string, units int) error {
	if !client.UnitsInRange(units) {
		return fmt.Errorf("units used must be between 0 and %d", client.MaxUnits)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i == -1 {
		return nil
	}
	s.clients[i].UnitsUsed = units
	s.clients[i].Touch()
	s.persistLocked()
	return nil
}

// Remove deletes the client with the given id, preserving the order of the
// rest. An unknown id is a silent no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i == -1 {
		return
	}
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	s.persistLocked()
}

// Clear empties the roster.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}
	s.clients = nil
	s.persistLocked()
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() {
	if err := s.snap.Save(s.clients); err != nil {
		s.logger.Warn("persisting roster failed", "error", err, "clients", len(s.clients))
	}
}
