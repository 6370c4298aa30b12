package models

import "time"

// Result is one user's one attempt at one quiz. Immutable after insert.
// QuizTitle is copied from the quiz at submission time and is not kept in
// sync with later title edits.
type Result struct {
	ID             string            `bson:"_id,omitempty" json:"id"`
	UserID         string            `bson:"user_id" json:"user_id"`
	QuizID         string            `bson:"quiz_id" json:"quiz_id"`
	QuizTitle      string            `bson:"quiz_title" json:"quiz_title"`
	Score          int               `bson:"score" json:"score"`
	TotalQuestions int               `bson:"total_questions" json:"total_questions"`
	UserAnswers    map[string]string `bson:"user_answers" json:"user_answers"` // question position -> selected option
	SubmittedAt    time.Time         `bson:"submitted_at" json:"submitted_at"`
}

// ResultDetail is a result with the submitting user's display fields
// resolved, used by the admin listing.
type ResultDetail struct {
	Result    `bson:",inline"`
	UserName  string `bson:"-" json:"user_name,omitempty"`
	UserEmail string `bson:"-" json:"user_email,omitempty"`
}

// ResultInput is the submission body. Score and TotalQuestions are accepted
// for contract compatibility but recomputed server-side from UserAnswers.
type ResultInput struct {
	QuizID         string            `json:"quiz_id"`
	Score          *int              `json:"score"`
	TotalQuestions *int              `json:"total_questions"`
	UserAnswers    map[string]string `json:"user_answers"`
}
