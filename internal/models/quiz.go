package models

// MCQ is one generated multiple-choice question. Options always has exactly
// four entries and CorrectAnswer exactly matches one of them once the question
// has passed validation.
type MCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizSession is the mutable state of one browser session, from extraction
// through submission. It is replaced wholesale on reset.
type QuizSession struct {
	LearningPoints []string       `json:"learning_points"`
	MCQs           []MCQ          `json:"mcqs"`
	UserAnswers    map[int]string `json:"user_answers"`
	Submitted      bool           `json:"submitted"`
}

// NewQuizSession returns an empty session with an initialized answer map.
func NewQuizSession() *QuizSession {
	return &QuizSession{UserAnswers: make(map[int]string)}
}

// WrongAnswer is one entry in the post-submission review list.
// QuestionNum is 1-based.
type WrongAnswer struct {
	QuestionNum   int    `json:"question_num"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// ScoreReport is the result of grading one submission. Correct + Wrong == Total
// and Percentage is the floored integer percentage (0 when Total is 0).
type ScoreReport struct {
	Total          int           `json:"total"`
	Correct        int           `json:"correct"`
	Wrong          int           `json:"wrong"`
	Percentage     int           `json:"percentage"`
	WrongQuestions []WrongAnswer `json:"wrong_questions"`
}

type GenerateQuizRequest struct {
	NumQuestions int `json:"num_questions"`
}

type AnswerRequest struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// QuizQuestionView is an MCQ as exposed to the quiz-taking client: the correct
// answer and explanation stay server-side until submission.
type QuizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
