package client

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind classifies a field validation failure.
type ErrorKind string

const (
	ErrMissingField  ErrorKind = "missing_field"
	ErrInvalidUnits  ErrorKind = "invalid_units"
	ErrInvalidStatus ErrorKind = "invalid_status"
	ErrInvalidDate   ErrorKind = "invalid_date"
)

// FieldError describes one invalid or missing field on a candidate record.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Candidate holds raw string fields for a client record before validation,
// as parsed from a CSV row or a form submission.
type Candidate struct {
	Name         string `json:"name"`
	Clinician    string `json:"clinician"`
	AssignedDate string `json:"assignedDate"`
	UnitsUsed    string `json:"unitsUsed"`
	Status       string `json:"status"`
}

// Validate checks every field of the candidate and returns a fully built
// client on success. On failure it returns all field errors, ordered by the
// canonical check sequence: required fields, units, status, date.
func Validate(cand Candidate) (Client, []FieldError) {
	var errs []FieldError

	name := strings.TrimSpace(cand.Name)
	clinician := strings.TrimSpace(cand.Clinician)
	date := strings.TrimSpace(cand.AssignedDate)
	units := strings.TrimSpace(cand.UnitsUsed)
	status := strings.TrimSpace(cand.Status)

	required := []struct {
		field string
		value string
	}{
		{"name", name},
		{"clinician", clinician},
		{"assignedDate", date},
		{"unitsUsed", units},
		{"status", status},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, FieldError{
				Field:   r.field,
				Kind:    ErrMissingField,
				Message: fmt.Sprintf("%s is required", r.field),
			})
		}
	}

	var (
		unitsVal int
		dateVal  time.Time
	)
	if units != "" {
		n, ok := ParseUnits(units)
		if !ok {
			errs = append(errs, FieldError{
				Field:   "unitsUsed",
				Kind:    ErrInvalidUnits,
				Message: fmt.Sprintf("units used must be a whole number between 0 and %d", MaxUnits),
			})
		}
		unitsVal = n
	}
	if status != "" && !ValidStatus(status) {
		errs = append(errs, FieldError{
			Field:   "status",
			Kind:    ErrInvalidStatus,
			Message: fmt.Sprintf("%q is not a recognized status", status),
		})
	}
	if date != "" {
		t, ok := ParseDate(date)
		if !ok {
			errs = append(errs, FieldError{
				Field:   "assignedDate",
				Kind:    ErrInvalidDate,
				Message: fmt.Sprintf("%q is not a valid date, use YYYY-MM-DD or M/D/YYYY", date),
			})
		}
		dateVal = t
	}

	if len(errs) > 0 {
		return Client{}, errs
	}
	return New(name, clinician, dateVal, unitsVal, Status(status)), nil
}
