package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"flashquiz-backend/internal/models"
)

const mcqPromptTemplate = `You are an expert quiz creator. Generate ONE multiple-choice question based on the following text:

"%s"

Return ONLY valid JSON in this exact format (no other text):
{
    "question": "Your question here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": "Option A",
    "explanation": "Brief explanation of why this is correct"
}

Rules:
- Question must test understanding of the key concept
- All 4 options must be plausible
- Only ONE option is correct
- Options should be concise (under 100 characters each)
- The correct_answer must exactly match one of the options`

type QuizService struct {
	llm TextGenerator
	rng *rand.Rand
}

func NewQuizService(llm TextGenerator) *QuizService {
	return &QuizService{
		llm: llm,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateMCQ builds one question from one learning point. A single model
// call, no retry; every failure is per-item and the caller skips the point.
func (s *QuizService) GenerateMCQ(ctx context.Context, learningPoint string) (*models.MCQ, error) {
	if s.llm == nil {
		return nil, ErrMissingCredential
	}

	prompt := fmt.Sprintf(mcqPromptTemplate, learningPoint)

	raw, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	raw = stripCodeFence(raw)

	var mcq models.MCQ
	if err := json.Unmarshal([]byte(raw), &mcq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := validateMCQ(&mcq); err != nil {
		return nil, err
	}

	return &mcq, nil
}

func validateMCQ(m *models.MCQ) error {
	if m.Question == "" || m.CorrectAnswer == "" {
		return ErrInvalidMCQShape
	}
	if len(m.Options) != 4 {
		return ErrInvalidMCQShape
	}
	for _, opt := range m.Options {
		if opt == m.CorrectAnswer {
			return nil
		}
	}
	return ErrInvalidMCQShape
}

// GenerateBatch samples min(n, len(points)) distinct learning points without
// replacement and generates questions for them one at a time. Failed items
// are dropped, so the result may be shorter than requested. Order follows
// the sampling order.
func (s *QuizService) GenerateBatch(ctx context.Context, points []string, n int, progress func(done, total int)) []models.MCQ {
	if n > len(points) {
		n = len(points)
	}
	if n <= 0 {
		return nil
	}

	perm := s.rng.Perm(len(points))

	var mcqs []models.MCQ
	for i, idx := range perm[:n] {
		mcq, err := s.GenerateMCQ(ctx, points[idx])
		if err != nil {
			if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrInvalidMCQShape) {
				log.Printf("WARNING: question %d/%d skipped: %v", i+1, n, err)
			} else {
				log.Printf("ERROR: question %d/%d failed: %v", i+1, n, err)
			}
		} else {
			mcqs = append(mcqs, *mcq)
		}

		if progress != nil {
			progress(i+1, n)
		}
	}

	return mcqs
}
