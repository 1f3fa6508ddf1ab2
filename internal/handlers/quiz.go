package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"flashquiz-backend/internal/config"
	"flashquiz-backend/internal/models"
	"flashquiz-backend/internal/services"
	"flashquiz-backend/internal/session"
)

type QuizHandler struct {
	// quiz is nil when no Gemini credential is configured; extraction and
	// preview still work, generation reports QUIZ_UNAVAILABLE.
	quiz    *services.QuizService
	store   *session.Store
	cookies *sessions.CookieStore
}

func NewQuizHandler(quiz *services.QuizService, store *session.Store, cookies *sessions.CookieStore) *QuizHandler {
	return &QuizHandler{
		quiz:    quiz,
		store:   store,
		cookies: cookies,
	}
}

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if h.quiz == nil {
		handleServiceError(w, r, services.ErrMissingCredential)
		return
	}

	id, sess := sessionFor(h.cookies, h.store, w, r)
	if len(sess.LearningPoints) == 0 {
		writeJSON(w, http.StatusConflict, errorResp("NO_DOCUMENT", "Upload a document before generating a quiz", r))
		return
	}

	target := config.ClampQuestionCount(req.NumQuestions)
	if target > len(sess.LearningPoints) {
		log.Printf("Only %d learning points available; generating %d questions", len(sess.LearningPoints), len(sess.LearningPoints))
	}

	mcqs := h.quiz.GenerateBatch(r.Context(), sess.LearningPoints, target, func(done, total int) {
		log.Printf("Generating question %d/%d for session %s", done, total, id)
	})

	if len(mcqs) == 0 {
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_FAILED", "Failed to generate quiz. Please try again.", r))
		return
	}

	// Replace quiz state atomically: questions, answers, and submission
	// flag together.
	sess.MCQs = mcqs
	sess.UserAnswers = make(map[int]string)
	sess.Submitted = false

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question_count": len(mcqs),
		"questions":      questionViews(mcqs),
	})
}

func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	_, sess := sessionFor(h.cookies, h.store, w, r)
	if len(sess.MCQs) == 0 {
		writeJSON(w, http.StatusConflict, errorResp("NO_QUIZ", "Generate a quiz before answering", r))
		return
	}
	if sess.Submitted {
		writeJSON(w, http.StatusConflict, errorResp("ALREADY_SUBMITTED", "Quiz already submitted. Reset to start over.", r))
		return
	}

	if req.QuestionIndex < 0 || req.QuestionIndex >= len(sess.MCQs) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Question index out of range", r))
		return
	}

	mcq := sess.MCQs[req.QuestionIndex]
	valid := false
	for _, opt := range mcq.Options {
		if opt == req.Answer {
			valid = true
			break
		}
	}
	if !valid {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Answer is not one of the question's options", r))
		return
	}

	sess.UserAnswers[req.QuestionIndex] = req.Answer

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question_index": req.QuestionIndex,
		"answered":       len(sess.UserAnswers),
		"total":          len(sess.MCQs),
	})
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	_, sess := sessionFor(h.cookies, h.store, w, r)
	if len(sess.MCQs) == 0 {
		writeJSON(w, http.StatusConflict, errorResp("NO_QUIZ", "Generate a quiz before submitting", r))
		return
	}

	if missing := services.MissingAnswers(sess.MCQs, sess.UserAnswers); len(missing) > 0 {
		handleServiceError(w, r, &services.IncompleteSubmissionError{Missing: missing})
		return
	}

	report := services.CalculateScore(sess.MCQs, sess.UserAnswers)
	sess.Submitted = true

	writeJSON(w, http.StatusOK, report)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, sess := sessionFor(h.cookies, h.store, w, r)

	answered := make([]int, 0, len(sess.UserAnswers))
	for i := range sess.MCQs {
		if _, ok := sess.UserAnswers[i]; ok {
			answered = append(answered, i)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quiz_generated":       len(sess.MCQs) > 0,
		"submitted":            sess.Submitted,
		"learning_point_count": len(sess.LearningPoints),
		"question_count":       len(sess.MCQs),
		"questions":            questionViews(sess.MCQs),
		"answered":             answered,
	})
}

func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, _ := sessionFor(h.cookies, h.store, w, r)
	h.store.Reset(id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session reset"})
}

func questionViews(mcqs []models.MCQ) []models.QuizQuestionView {
	views := make([]models.QuizQuestionView, len(mcqs))
	for i, mcq := range mcqs {
		views[i] = models.QuizQuestionView{Question: mcq.Question, Options: mcq.Options}
	}
	return views
}
