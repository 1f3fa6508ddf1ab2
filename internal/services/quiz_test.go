package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"testing"
)

// stubGenerator replies to each prompt in sequence from a canned list,
// recording the learning point embedded in every prompt it sees.
type stubGenerator struct {
	responses []string
	errs      []error
	calls     int
	points    []string
}

var promptPointPattern = regexp.MustCompile(`(?s)following text:\n\n"(.*?)"\n`)

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++

	if m := promptPointPattern.FindStringSubmatch(prompt); m != nil {
		s.points = append(s.points, m[1])
	}

	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return validMCQJSON(fmt.Sprintf("Q%d", i+1)), nil
}

func validMCQJSON(question string) string {
	return fmt.Sprintf(`{"question": "%s", "options": ["A", "B", "C", "D"], "correct_answer": "B", "explanation": "B is right"}`, question)
}

func testPoints(n int) []string {
	points := make([]string, n)
	for i := range points {
		points[i] = fmt.Sprintf("Learning point number %d about a distinct topic worth testing.", i)
	}
	return points
}

func newTestQuizService(stub *stubGenerator, seed int64) *QuizService {
	return &QuizService{llm: stub, rng: rand.New(rand.NewSource(seed))}
}

func TestGenerateMCQ(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  error
	}{
		{"valid JSON", validMCQJSON("What is B?"), nil},
		{"fenced JSON", "```json\n" + validMCQJSON("What is B?") + "\n```", nil},
		{"bare fence", "```\n" + validMCQJSON("What is B?") + "\n```", nil},
		{"invalid JSON", "not json at all", ErrMalformedResponse},
		{"three options", `{"question": "Q?", "options": ["A", "B", "C"], "correct_answer": "A"}`, ErrInvalidMCQShape},
		{"five options", `{"question": "Q?", "options": ["A", "B", "C", "D", "E"], "correct_answer": "A"}`, ErrInvalidMCQShape},
		{"correct answer not an option", `{"question": "Q?", "options": ["A", "B", "C", "D"], "correct_answer": "E"}`, ErrInvalidMCQShape},
		{"case mismatch is not a match", `{"question": "Q?", "options": ["A", "B", "C", "D"], "correct_answer": "a"}`, ErrInvalidMCQShape},
		{"missing question", `{"options": ["A", "B", "C", "D"], "correct_answer": "A"}`, ErrInvalidMCQShape},
		{"missing correct answer", `{"question": "Q?", "options": ["A", "B", "C", "D"]}`, ErrInvalidMCQShape},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestQuizService(&stubGenerator{responses: []string{tc.response}}, 1)

			mcq, err := svc.GenerateMCQ(context.Background(), "Some learning point that is long enough to be real.")

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
				}
				if mcq != nil {
					t.Errorf("Expected nil MCQ on failure, got %+v", mcq)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mcq.Question != "What is B?" || mcq.CorrectAnswer != "B" || len(mcq.Options) != 4 {
				t.Errorf("Unexpected MCQ: %+v", mcq)
			}
		})
	}
}

func TestGenerateMCQTransportError(t *testing.T) {
	svc := newTestQuizService(&stubGenerator{errs: []error{errors.New("connection refused")}}, 1)

	_, err := svc.GenerateMCQ(context.Background(), "Some learning point that is long enough to be real.")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected *GenerationError, got %v", err)
	}
}

func TestGenerateBatchRoundTrip(t *testing.T) {
	stub := &stubGenerator{}
	svc := newTestQuizService(stub, 42)
	points := testPoints(8)

	mcqs := svc.GenerateBatch(context.Background(), points, 5, nil)

	if len(mcqs) != 5 {
		t.Fatalf("Expected 5 MCQs, got %d", len(mcqs))
	}

	// Result order is the sampling order: the i-th MCQ comes from the
	// i-th prompt sent.
	for i, mcq := range mcqs {
		if mcq.Question != fmt.Sprintf("Q%d", i+1) {
			t.Errorf("MCQ %d out of order: %q", i, mcq.Question)
		}
	}

	// Sampling is without replacement.
	seen := make(map[string]bool)
	for _, p := range stub.points {
		if seen[p] {
			t.Errorf("Learning point sampled twice: %q", p)
		}
		seen[p] = true
	}
	if len(stub.points) != 5 {
		t.Errorf("Expected 5 prompts, got %d", len(stub.points))
	}
}

func TestGenerateBatchCapsAtAvailablePoints(t *testing.T) {
	stub := &stubGenerator{}
	svc := newTestQuizService(stub, 7)

	mcqs := svc.GenerateBatch(context.Background(), testPoints(3), 10, nil)

	if len(mcqs) != 3 {
		t.Errorf("Expected 3 MCQs, got %d", len(mcqs))
	}
	if stub.calls != 3 {
		t.Errorf("Expected 3 model calls, got %d", stub.calls)
	}
}

func TestGenerateBatchSkipsFailures(t *testing.T) {
	stub := &stubGenerator{
		responses: []string{
			validMCQJSON("Q1"),
			"not json",
			`{"question": "Q3", "options": ["A", "B", "C"], "correct_answer": "A"}`,
			validMCQJSON("Q4"),
		},
		errs: []error{nil, nil, nil, nil, errors.New("boom")},
	}
	svc := newTestQuizService(stub, 3)

	mcqs := svc.GenerateBatch(context.Background(), testPoints(5), 5, nil)

	if len(mcqs) != 2 {
		t.Fatalf("Expected 2 surviving MCQs, got %d", len(mcqs))
	}
	if mcqs[0].Question != "Q1" || mcqs[1].Question != "Q4" {
		t.Errorf("Unexpected surviving questions: %q, %q", mcqs[0].Question, mcqs[1].Question)
	}
}

func TestGenerateBatchEmptyPoints(t *testing.T) {
	svc := newTestQuizService(&stubGenerator{}, 1)
	if mcqs := svc.GenerateBatch(context.Background(), nil, 5, nil); mcqs != nil {
		t.Errorf("Expected nil batch for no points, got %v", mcqs)
	}
}

func TestGenerateBatchReportsProgress(t *testing.T) {
	svc := newTestQuizService(&stubGenerator{}, 9)

	var steps [][2]int
	svc.GenerateBatch(context.Background(), testPoints(4), 3, func(done, total int) {
		steps = append(steps, [2]int{done, total})
	})

	if len(steps) != 3 {
		t.Fatalf("Expected 3 progress calls, got %d", len(steps))
	}
	for i, s := range steps {
		if s[0] != i+1 || s[1] != 3 {
			t.Errorf("Progress call %d = %v, want [%d 3]", i, s, i+1)
		}
	}
}
