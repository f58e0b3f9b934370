package csvio

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable
// guidance. Users can quote the code to support staff for faster diagnosis.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

// kindMessages maps each row error kind to its user-facing guidance.
var kindMessages = map[ErrorKind]UserMessage{
	ErrMissingColumns: {
		Message: "Required columns are missing from the file",
		Action:  "Download the template and check that all column headers are present",
		Code:    "IMP001",
	},
	ErrMissingFields: {
		Message: "A required value is empty",
		Action:  "Ensure every row has a name, clinician, assigned date, units used, and status",
		Code:    "IMP002",
	},
	ErrInvalidUnits: {
		Message: "Units used is not a whole number between 0 and 960",
		Action:  "Correct the units value and re-import",
		Code:    "IMP003",
	},
	ErrInvalidStatus: {
		Message: "Status does not match one of the recognized values",
		Action:  "Status values are case sensitive; copy the exact spelling from the status list",
		Code:    "IMP004",
	},
	ErrInvalidDate: {
		Message: "Assigned date could not be parsed",
		Action:  "Use YYYY-MM-DD or M/D/YYYY",
		Code:    "IMP005",
	},
}

// structuralMessage is shown when the file itself cannot be parsed (IMP000).
var structuralMessage = UserMessage{
	Message: "The file could not be read as CSV",
	Action:  "Ensure the file is a comma-separated UTF-8 text file and try again",
	Code:    "IMP000",
}

// MessageFor returns the user-facing guidance for a row error kind, falling
// back to the structural message for unknown kinds.
func MessageFor(kind ErrorKind) UserMessage {
	if msg, ok := kindMessages[kind]; ok {
		return msg
	}
	return structuralMessage
}

// StructuralMessage returns the guidance shown for parser-level failures.
func StructuralMessage() UserMessage {
	return structuralMessage
}

// Report renders the full error list as a plain-text report, one line per
// rejected row in original row order.
func Report(errs []RowError) string {
	var b strings.Builder
	for _, e := range errs {
		fmt.Fprintf(&b, "Row %d: %s (Code: %s)\n", e.Row, e.Message, MessageFor(e.Kind).Code)
	}
	return b.String()
}
