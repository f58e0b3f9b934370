package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"caseboard/internal/client"
	"caseboard/internal/logging"
)

// handleListClients returns the roster, optionally filtered and sorted.
//
// Query parameters:
//   - q: case-insensitive substring match on name or clinician
//   - status: exact status filter
//   - sort: name, clinician, assignedDate, unitsUsed, status, lastUpdated
//   - dir: asc (default) or desc
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients := s.store.Clients()

	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
		filtered := clients[:0]
		for _, c := range clients {
			if strings.Contains(strings.ToLower(c.Name), q) ||
				strings.Contains(strings.ToLower(c.Clinician), q) {
				filtered = append(filtered, c)
			}
		}
		clients = filtered
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := clients[:0]
		for _, c := range clients {
			if string(c.Status) == status {
				filtered = append(filtered, c)
			}
		}
		clients = filtered
	}

	if key := r.URL.Query().Get("sort"); key != "" {
		if err := sortClients(clients, key, r.URL.Query().Get("dir")); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"clients": clients,
		"total":   len(clients),
	})
}

func sortClients(clients []client.Client, key, dir string) error {
	var less func(a, b client.Client) bool
	switch key {
	case "name":
		less = func(a, b client.Client) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "clinician":
		less = func(a, b client.Client) bool { return strings.ToLower(a.Clinician) < strings.ToLower(b.Clinician) }
	case "assignedDate":
		less = func(a, b client.Client) bool { return a.AssignedDate.Before(b.AssignedDate) }
	case "unitsUsed":
		less = func(a, b client.Client) bool { return a.UnitsUsed < b.UnitsUsed }
	case "status":
		less = func(a, b client.Client) bool { return a.Status < b.Status }
	case "lastUpdated":
		less = func(a, b client.Client) bool { return a.LastUpdated.Before(b.LastUpdated) }
	default:
		return fmt.Errorf("unknown sort key %q", key)
	}
	if dir == "desc" {
		inner := less
		less = func(a, b client.Client) bool { return inner(b, a) }
	}
	sort.SliceStable(clients, func(i, j int) bool { return less(clients[i], clients[j]) })
	return nil
}

// handleAddClient validates a submitted candidate and appends it to the
// roster. Field errors come back as 422 with per-field detail.
func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var cand client.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		s.respondError(w, r, fmt.Errorf("decoding request: %w", err), http.StatusBadRequest)
		return
	}

	c, fieldErrs := client.Validate(cand)
	if len(fieldErrs) > 0 {
		respondErrorJSON(w, ErrorResponse{
			Error:  "client record is invalid",
			Fields: fieldErrs,
		}, http.StatusUnprocessableEntity)
		return
	}

	if err := s.store.Add(c); err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	logging.FromContext(r.Context()).Info("client added", "id", c.ID)
	respondJSON(w, http.StatusCreated, c)
}

// handleUpdateStatus changes one client's status. An unknown id is a 404;
// the store itself treats it as a no-op.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, fmt.Errorf("decoding request: %w", err), http.StatusBadRequest)
		return
	}
	if !client.ValidStatus(body.Status) {
		respondErrorJSON(w, ErrorResponse{
			Error:  fmt.Sprintf("%q is not a recognized status", body.Status),
			Action: "Status values are case sensitive; copy the exact spelling from the status list",
		}, http.StatusUnprocessableEntity)
		return
	}
	if _, ok := s.store.Get(id); !ok {
		respondErrorJSON(w, ErrorResponse{Error: "client not found"}, http.StatusNotFound)
		return
	}
	if err := s.store.UpdateStatus(id, client.Status(body.Status)); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	c, _ := s.store.Get(id)
	respondJSON(w, http.StatusOK, c)
}

// handleUpdateUnits changes one client's units used, rejecting values
// outside the annual cap.
func (s *Server) handleUpdateUnits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		UnitsUsed int `json:"unitsUsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, fmt.Errorf("decoding request: %w", err), http.StatusBadRequest)
		return
	}
	if !client.UnitsInRange(body.UnitsUsed) {
		respondErrorJSON(w, ErrorResponse{
			Error:  fmt.Sprintf("units used must be between 0 and %d", client.MaxUnits),
			Action: "Correct the units value and try again",
		}, http.StatusUnprocessableEntity)
		return
	}
	if _, ok := s.store.Get(id); !ok {
		respondErrorJSON(w, ErrorResponse{Error: "client not found"}, http.StatusNotFound)
		return
	}
	if err := s.store.UpdateUnits(id, body.UnitsUsed); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	c, _ := s.store.Get(id)
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleRemoveClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.store.Get(id); !ok {
		respondErrorJSON(w, ErrorResponse{Error: "client not found"}, http.StatusNotFound)
		return
	}
	s.store.Remove(id)
	logging.FromContext(r.Context()).Info("client removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleListStatuses returns the canonical status set for UI dropdowns.
func (s *Server) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"statuses": client.Statuses()})
}

// handleReset clears the entire roster.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	n := s.store.Len()
	s.store.Clear()
	logging.FromContext(r.Context()).Info("roster cleared", "removed", n)
	respondJSON(w, http.StatusOK, map[string]any{"removed": n})
}
