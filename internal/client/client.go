// Package client defines the roster's client record and its validation rules.
// This package has no dependencies on storage or transport and can be used by
// the import engine, the roster store, and tests without modification.
package client

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUnits is the annual unit cap. UnitsUsed is always within [0, MaxUnits].
const MaxUnits = 960

// Status is one of the fixed set of client statuses. Matching against the
// canonical literals is exact and case-sensitive.
type Status string

const (
	StatusNewAuthorization     Status = "New Authorization"
	StatusCurrentAuthorization Status = "Current Authorization"
	StatusCurrentAuthNewLBS    Status = "Current Authorization (New LBS)"
	StatusNewlyAssigned        Status = "Newly Assigned"
	StatusHospitalized         Status = "Client Hospitalized"
	StatusFrequentCancellation Status = "Frequent Caregiver Cancellations"
)

// Statuses returns the canonical status set in display order.
func Statuses() []Status {
	return []Status{
		StatusNewAuthorization,
		StatusCurrentAuthorization,
		StatusCurrentAuthNewLBS,
		StatusNewlyAssigned,
		StatusHospitalized,
		StatusFrequentCancellation,
	}
}

// ValidStatus reports whether s is exactly one of the canonical literals.
func ValidStatus(s string) bool {
	for _, st := range Statuses() {
		if s == string(st) {
			return true
		}
	}
	return false
}

// Client represents one person receiving tracked services.
//
// AssignedDate is stored as a calendar date at UTC midnight; LastUpdated is
// refreshed on every mutation to Status or UnitsUsed. Both serialize as
// ISO-8601 timestamps.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Clinician    string    `json:"clinician"`
	AssignedDate time.Time `json:"assignedDate"`
	UnitsUsed    int       `json:"unitsUsed"`
	Status       Status    `json:"status"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// New creates a client with a freshly generated id and LastUpdated set to now.
// Callers are expected to pass already-validated fields; use Validate for
// untrusted input.
func New(name, clinician string, assignedDate time.Time, unitsUsed int, status Status) Client {
	return Client{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Clinician:    strings.TrimSpace(clinician),
		AssignedDate: assignedDate,
		UnitsUsed:    unitsUsed,
		Status:       status,
		LastUpdated:  time.Now().UTC(),
	}
}

// Touch refreshes LastUpdated to now.
func (c *Client) Touch() {
	c.LastUpdated = time.Now().UTC()
}

// dateLayouts are the accepted textual date forms: ISO first, then US.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

// ParseDate parses an assigned-date string in ISO (YYYY-MM-DD) or US
// (M/D/YYYY) form. The canonical result is the calendar day at UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseUnits parses a units-used string as an integer within [0, MaxUnits].
// ok is false when the value does not parse or is out of range.
func ParseUnits(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if !UnitsInRange(n) {
		return 0, false
	}
	return n, true
}

// UnitsInRange reports whether n is within [0, MaxUnits].
func UnitsInRange(n int) bool {
	return n >= 0 && n <= MaxUnits
}
