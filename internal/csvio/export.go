package csvio

import (
	"strconv"
	"strings"
	"time"

	"caseboard/internal/client"
)

// exportDateLayout renders calendar dates in US short form, e.g. 3/5/2024.
const exportDateLayout = "1/2/2006"

// ExportFilename is the suggested download name for roster exports.
const ExportFilename = "clients.csv"

// Export renders the roster as CSV text: a fixed header row followed by one
// row per client in the given order. Fields are comma-joined verbatim with no
// quoting, so a name containing a comma will shift that row's columns. This
// mirrors the import side's tolerance for ragged rows and is a known
// limitation of the format.
func Export(clients []client.Client) string {
	var b strings.Builder
	b.WriteString(exportHeader())
	b.WriteByte('\n')
	for _, c := range clients {
		b.WriteString(c.Name)
		b.WriteByte(',')
		b.WriteString(c.Clinician)
		b.WriteByte(',')
		b.WriteString(formatDate(c.AssignedDate))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.UnitsUsed))
		b.WriteByte(',')
		b.WriteString(string(c.Status))
		b.WriteByte(',')
		b.WriteString(formatDate(c.LastUpdated))
		b.WriteByte('\n')
	}
	return b.String()
}

// Template returns a starter CSV with the expected columns and one sample
// row, suitable for hand-editing before import.
func Template() string {
	return "Name,Assigned Clinician,Assigned Date,Units Used,Status\n" +
		"John Doe,Dr. Smith,2024-03-20,120,New Authorization\n"
}

func exportHeader() string {
	return "Name,Assigned Clinician,Assigned Date,Units Used,Status,Last Updated"
}

func formatDate(t time.Time) string {
	return t.Format(exportDateLayout)
}
