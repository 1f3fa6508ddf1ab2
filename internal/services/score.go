package services

import "flashquiz-backend/internal/models"

// NotAnswered is the sentinel shown in the review list for questions the
// user never answered.
const NotAnswered = "Not answered"

// CalculateScore grades a submission against the quiz. Pure function: exact
// string comparison per question, floored integer percentage, and a review
// entry for every miss. Unanswered questions count as wrong.
func CalculateScore(mcqs []models.MCQ, userAnswers map[int]string) models.ScoreReport {
	correct := 0
	var wrong []models.WrongAnswer

	for i, mcq := range mcqs {
		answer, answered := userAnswers[i]
		if answered && answer == mcq.CorrectAnswer {
			correct++
			continue
		}

		if !answered || answer == "" {
			answer = NotAnswered
		}
		explanation := mcq.Explanation
		if explanation == "" {
			explanation = "N/A"
		}

		wrong = append(wrong, models.WrongAnswer{
			QuestionNum:   i + 1,
			Question:      mcq.Question,
			UserAnswer:    answer,
			CorrectAnswer: mcq.CorrectAnswer,
			Explanation:   explanation,
		})
	}

	total := len(mcqs)
	percentage := 0
	if total > 0 {
		percentage = correct * 100 / total
	}

	return models.ScoreReport{
		Total:          total,
		Correct:        correct,
		Wrong:          total - correct,
		Percentage:     percentage,
		WrongQuestions: wrong,
	}
}

// MissingAnswers returns the 1-based numbers of unanswered questions. The
// HTTP layer rejects the submission when this is non-empty, before any
// scoring happens.
func MissingAnswers(mcqs []models.MCQ, userAnswers map[int]string) []int {
	var missing []int
	for i := range mcqs {
		if answer, ok := userAnswers[i]; !ok || answer == "" {
			missing = append(missing, i+1)
		}
	}
	return missing
}
