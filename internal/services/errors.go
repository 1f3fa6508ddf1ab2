package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat means the declared document type is not one of
	// PDF, DOCX, or plain text.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrMalformedResponse means the model reply could not be parsed as JSON.
	ErrMalformedResponse = errors.New("model response is not valid JSON")

	// ErrInvalidMCQShape means the parsed JSON did not form a usable MCQ
	// (missing keys, wrong option count, or a correct answer not among
	// the options).
	ErrInvalidMCQShape = errors.New("generated MCQ did not match expected format")

	// ErrMissingCredential blocks quiz generation only; extraction and
	// learning-point preview still work without an API key.
	ErrMissingCredential = errors.New("Gemini API key is not configured")
)

// ExtractionError wraps a parse or decode failure for a recognized document
// type. It is non-fatal: the caller reports it and waits for a new upload.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationError wraps a transport or API failure during a single model
// call. The batch layer drops the item and moves on.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("MCQ generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IncompleteSubmissionError lists the 1-based numbers of unanswered
// questions in a rejected submission.
type IncompleteSubmissionError struct {
	Missing []int
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("submission is missing answers for %d question(s)", len(e.Missing))
}
