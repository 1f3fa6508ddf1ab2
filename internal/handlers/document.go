package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/sessions"

	"flashquiz-backend/internal/services"
	"flashquiz-backend/internal/session"
)

// Capped preview of learning points returned after extraction.
const previewLimit = 20

type DocumentHandler struct {
	extract  *services.FileExtractService
	store    *session.Store
	cookies  *sessions.CookieStore
	maxBytes int64
}

func NewDocumentHandler(extract *services.FileExtractService, store *session.Store, cookies *sessions.CookieStore, maxUploadMB int64) *DocumentHandler {
	return &DocumentHandler{
		extract:  extract,
		store:    store,
		cookies:  cookies,
		maxBytes: maxUploadMB * 1024 * 1024,
	}
}

// Upload accepts a study document, extracts its text, filters it into
// learning points, and starts a fresh quiz session around them.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", fmt.Sprintf("File size exceeds %dMB limit", h.maxBytes/(1024*1024)), r))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read uploaded file", r))
		return
	}

	typ := services.DetectDocumentType(header.Header.Get("Content-Type"), header.Filename)
	if typ == services.DocumentUnsupported {
		handleServiceError(w, r, services.ErrUnsupportedFormat)
		return
	}

	text, units, err := h.extract.Extract(data, typ)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if text == "" {
		handleServiceError(w, r, &services.ExtractionError{Format: typ.String(), Err: fmt.Errorf("no extractable text found")})
		return
	}

	points := services.CleanAndSplit(text, services.MinLearningPointLength, services.MaxLearningPointLength)
	if len(points) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("NO_LEARNING_POINTS", "No valid learning points found in the document. Please try a different file.", r))
		return
	}

	// A new document restarts the whole flow.
	id, _ := sessionFor(h.cookies, h.store, w, r)
	sess := h.store.Reset(id)
	sess.LearningPoints = points

	preview := points
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename":             header.Filename,
		"format":               typ.String(),
		"units":                units,
		"learning_point_count": len(points),
		"preview":              preview,
	})
}

func (h *DocumentHandler) SupportedFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats": []map[string]string{
			{"extension": ".pdf", "mime_type": "application/pdf", "description": "PDF Document"},
			{"extension": ".docx", "mime_type": "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "description": "Word Document"},
			{"extension": ".txt", "mime_type": "text/plain", "description": "Plain Text"},
		},
	})
}
