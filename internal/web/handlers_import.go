package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"caseboard/internal/client"
	"caseboard/internal/csvio"
	"caseboard/internal/logging"
)

// previewResponse is returned when a file validates cleanly. The staged
// batch waits server-side under SessionID until confirmed or cancelled.
type previewResponse struct {
	SessionID string          `json:"sessionId"`
	Total     int             `json:"total"`
	Preview   []client.Client `json:"preview"`
	Remaining int             `json:"remaining"`
}

// importErrorResponse is returned when one or more rows failed validation.
// Nothing is staged; the report lists every bad row in file order.
type importErrorResponse struct {
	Error  string           `json:"error"`
	Errors []csvio.RowError `json:"errors"`
	Report string           `json:"report"`
}

// handleImportPreview parses and validates an uploaded CSV. A clean file is
// staged for confirmation; any row failure rejects the whole batch.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := csvio.Import(data)
	if err != nil {
		msg := csvio.StructuralMessage()
		respondErrorJSON(w, ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", msg.Message, err),
			Action: msg.Action,
			Code:   msg.Code,
		}, http.StatusBadRequest)
		return
	}
	if !result.OK() {
		logging.FromContext(r.Context()).Info("import rejected",
			"rows_failed", len(result.Errors))
		respondJSON(w, http.StatusUnprocessableEntity, importErrorResponse{
			Error:  fmt.Sprintf("%d row(s) failed validation; no clients were imported", len(result.Errors)),
			Errors: result.Errors,
			Report: csvio.Report(result.Errors),
		})
		return
	}

	sessionID := s.sessions.stage(result.Clients)
	preview := result.Clients
	if len(preview) > s.cfg.Import.PreviewRows {
		preview = preview[:s.cfg.Import.PreviewRows]
	}
	logging.FromContext(r.Context()).Info("import staged",
		"session_id", sessionID, "clients", len(result.Clients))
	respondJSON(w, http.StatusOK, previewResponse{
		SessionID: sessionID,
		Total:     len(result.Clients),
		Preview:   preview,
		Remaining: len(result.Clients) - len(preview),
	})
}

// handleImportConfirm commits a staged batch to the roster.
func (s *Server) handleImportConfirm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	batch, ok := s.sessions.take(sessionID)
	if !ok {
		respondErrorJSON(w, ErrorResponse{
			Error:  "import session not found",
			Action: "The preview may have expired. Upload the file again",
		}, http.StatusNotFound)
		return
	}
	if err := s.store.BulkAdd(batch); err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}
	logging.FromContext(r.Context()).Info("import confirmed",
		"session_id", sessionID, "clients", len(batch))
	respondJSON(w, http.StatusOK, map[string]any{
		"imported": len(batch),
		"total":    s.store.Len(),
	})
}

// handleImportCancel discards a staged batch.
func (s *Server) handleImportCancel(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !s.sessions.drop(sessionID) {
		respondErrorJSON(w, ErrorResponse{Error: "import session not found"}, http.StatusNotFound)
		return
	}
	logging.FromContext(r.Context()).Info("import cancelled", "session_id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// readUpload extracts the CSV bytes from either a multipart form (field
// "file") or a raw request body, enforcing the size limit.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.Import.MaxFileSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
			return nil, fmt.Errorf("parsing upload: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("no file provided: %w", err)
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no file provided")
	}
	return data, nil
}
