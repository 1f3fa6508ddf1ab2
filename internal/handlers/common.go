package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"flashquiz-backend/internal/models"
	"flashquiz-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var extractionErr *services.ExtractionError
	var incompleteErr *services.IncompleteSubmissionError
	var generationErr *services.GenerationError

	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("UNSUPPORTED_FORMAT", "File type not supported. Upload a PDF, DOCX, or TXT file.", r))
	case errors.As(err, &extractionErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_ERROR", "Failed to extract text from the document. Please check the file format.", r))
	case errors.Is(err, services.ErrMissingCredential):
		writeJSON(w, http.StatusServiceUnavailable, errorResp("QUIZ_UNAVAILABLE", "Quiz generation is not configured. Set GEMINI_API_KEY and restart.", r))
	case errors.As(err, &incompleteErr):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields(
			"INCOMPLETE_SUBMISSION",
			"Please answer all questions before submitting",
			map[string]string{"missing_questions": joinInts(incompleteErr.Missing)},
			r,
		))
	case errors.As(err, &generationErr),
		errors.Is(err, services.ErrMalformedResponse),
		errors.Is(err, services.ErrInvalidMCQShape):
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_FAILED", "Failed to generate quiz. Please try again.", r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
