package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"caseboard/internal/client"
)

// ErrorKind classifies a row-level import failure.
type ErrorKind string

const (
	ErrMissingColumns ErrorKind = "missing_columns"
	ErrMissingFields  ErrorKind = "missing_fields"
	ErrInvalidUnits   ErrorKind = "invalid_units"
	ErrInvalidStatus  ErrorKind = "invalid_status"
	ErrInvalidDate    ErrorKind = "invalid_date"
)

// RowError describes why one data row was rejected. Row is 1-based and
// counts data rows only, the header excluded.
type RowError struct {
	Row     int       `json:"row"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ImportResult holds the outcome of a batch import. The batch is
// all-or-nothing: either every row validated and Clients holds them in file
// order, or Errors lists every rejected row and Clients is empty.
type ImportResult struct {
	Clients []client.Client `json:"clients,omitempty"`
	Errors  []RowError      `json:"errors,omitempty"`
}

// OK reports whether the whole batch validated.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// Import parses raw CSV bytes into a batch of validated clients. A non-nil
// error means the file itself could not be parsed (structural failure); row
// level problems are reported through ImportResult.Errors instead.
func Import(data []byte) (ImportResult, error) {
	records, err := parseCSV(data)
	if err != nil {
		return ImportResult{}, err
	}
	if len(records) == 0 {
		return ImportResult{}, fmt.Errorf("file contains no rows")
	}

	idx, missing := resolveHeader(records[0])

	var (
		clients []client.Client
		rowErrs []RowError
	)
	for i, record := range records[1:] {
		rowNum := i + 1
		if isEmptyRow(record) {
			continue
		}
		if len(missing) > 0 {
			rowErrs = append(rowErrs, RowError{
				Row:     rowNum,
				Kind:    ErrMissingColumns,
				Message: missingColumnsMessage(),
			})
			continue
		}
		c, rerr := buildRow(rowNum, idx, record)
		if rerr != nil {
			rowErrs = append(rowErrs, *rerr)
			continue
		}
		clients = append(clients, c)
	}

	if len(rowErrs) > 0 {
		return ImportResult{Errors: rowErrs}, nil
	}
	return ImportResult{Clients: clients}, nil
}

// buildRow validates one data row, short-circuiting at the first failing
// check: presence, units, status, date.
func buildRow(rowNum int, idx fieldIndex, record []string) (client.Client, *RowError) {
	cell := func(f Field) string {
		col := idx[f]
		if col < 0 || col >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[col])
	}

	name := cell(FieldName)
	clinician := cell(FieldClinician)
	date := cell(FieldAssignedDate)
	units := cell(FieldUnitsUsed)
	status := cell(FieldStatus)

	var blank []string
	for _, f := range []struct {
		label string
		value string
	}{
		{FieldName.Label(), name},
		{FieldClinician.Label(), clinician},
		{FieldAssignedDate.Label(), date},
		{FieldUnitsUsed.Label(), units},
		{FieldStatus.Label(), status},
	} {
		if f.value == "" {
			blank = append(blank, f.label)
		}
	}
	if len(blank) > 0 {
		return client.Client{}, &RowError{
			Row:     rowNum,
			Kind:    ErrMissingFields,
			Message: fmt.Sprintf("missing required values: %s", strings.Join(blank, ", ")),
		}
	}

	unitsVal, ok := client.ParseUnits(units)
	if !ok {
		return client.Client{}, &RowError{
			Row:     rowNum,
			Kind:    ErrInvalidUnits,
			Message: fmt.Sprintf("units used %q must be a whole number between 0 and %d", units, client.MaxUnits),
		}
	}
	if !client.ValidStatus(status) {
		return client.Client{}, &RowError{
			Row:     rowNum,
			Kind:    ErrInvalidStatus,
			Message: fmt.Sprintf("%q is not a recognized status", status),
		}
	}
	dateVal, ok := client.ParseDate(date)
	if !ok {
		return client.Client{}, &RowError{
			Row:     rowNum,
			Kind:    ErrInvalidDate,
			Message: fmt.Sprintf("%q is not a valid date, use YYYY-MM-DD or M/D/YYYY", date),
		}
	}

	return client.New(name, clinician, dateVal, unitsVal, client.Status(status)), nil
}

func missingColumnsMessage() string {
	labels := make([]string, 0, int(numFields))
	for f := Field(0); f < numFields; f++ {
		labels = append(labels, f.Label())
	}
	return fmt.Sprintf("file is missing required columns; expected %s", strings.Join(labels, ", "))
}

// parseCSV decodes raw bytes into records, tolerating ragged rows and stray
// quotes. Invalid UTF-8 sequences are replaced before parsing.
func parseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return records, nil
}

func sanitizeUTF8(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
