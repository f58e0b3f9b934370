package web

import (
	"fmt"
	"net/http"

	"caseboard/internal/csvio"
)

// handleExport streams the current roster as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	body := csvio.Export(s.store.Clients())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvio.ExportFilename))
	w.Write([]byte(body))
}

// handleTemplate serves the starter CSV for new imports.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="client_template.csv"`)
	w.Write([]byte(csvio.Template()))
}
