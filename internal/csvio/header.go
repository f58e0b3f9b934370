// Package csvio implements the CSV import and export engines for the client
// roster: fuzzy header matching, per-row validation with an all-or-nothing
// batch result, and the matching export format.
package csvio

import (
	"strings"
)

// Field identifies one of the five required client columns.
type Field int

const (
	FieldName Field = iota
	FieldClinician
	FieldAssignedDate
	FieldUnitsUsed
	FieldStatus
	numFields
)

// Label returns the display name used in error reports and the export header.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldClinician:
		return "Assigned Clinician"
	case FieldAssignedDate:
		return "Assigned Date"
	case FieldUnitsUsed:
		return "Units Used"
	case FieldStatus:
		return "Status"
	}
	return "Unknown"
}

// headerAliases maps each field to the header spellings it accepts. Aliases
// are compared after lowercasing only; the incoming header cell is lowercased
// and stripped of whitespace before comparison, so multi-word aliases match
// through their collapsed forms (for example "assigned clinician" matches via
// "assignedclinician").
var headerAliases = map[Field][]string{
	FieldName:         {"name", "client name", "clientname", "client"},
	FieldClinician:    {"clinician", "assigned clinician", "assignedclinician"},
	FieldAssignedDate: {"assigned date", "assigneddate", "date assigned", "dateassigned", "date"},
	FieldUnitsUsed:    {"units used", "unitsused", "units"},
	FieldStatus:       {"status", "client status", "clientstatus"},
}

// normalizeHeader lowercases a header cell and removes all whitespace.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r', '\u00a0', '\ufeff':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fieldIndex maps each required field to its column position in the header
// row, or -1 when the column is absent.
type fieldIndex [numFields]int

// resolveHeader matches the header row against the alias table. It returns
// the resolved column positions and the list of required fields that no
// header cell matched.
func resolveHeader(header []string) (fieldIndex, []Field) {
	var idx fieldIndex
	for f := range idx {
		idx[f] = -1
	}
	for col, cell := range header {
		norm := normalizeHeader(cell)
		if norm == "" {
			continue
		}
		for f := Field(0); f < numFields; f++ {
			if idx[f] != -1 {
				continue
			}
			for _, alias := range headerAliases[f] {
				if norm == strings.ToLower(alias) {
					idx[f] = col
					break
				}
			}
		}
	}
	var missing []Field
	for f := Field(0); f < numFields; f++ {
		if idx[f] == -1 {
			missing = append(missing, f)
		}
	}
	return idx, missing
}
