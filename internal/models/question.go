package models

import (
	"errors"
	"time"
)

type Question struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	QuizID        string    `bson:"quiz_id" json:"quiz_id"`
	QuestionText  string    `bson:"question_text" json:"question_text"`
	Options       []string  `bson:"options" json:"options"`
	CorrectAnswer string    `bson:"correct_answer" json:"correct_answer"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// QuestionInput is one question as submitted by an author. ID is empty for a
// new question; on quiz update it identifies the existing question to patch.
type QuestionInput struct {
	ID            string   `json:"id,omitempty"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuestionCreateInput is the body for adding a question to a quiz outside
// the quiz authoring flow.
type QuestionCreateInput struct {
	QuestionInput
	QuizID string `json:"quiz_id"`
}

func (in *QuestionCreateInput) Validate() error {
	if in.QuizID == "" {
		return errors.New("quiz_id is required")
	}
	return in.QuestionInput.Validate()
}

func (in *QuestionInput) Validate() error {
	if in.QuestionText == "" {
		return errors.New("question text is required")
	}
	if len(in.Options) < 2 {
		return errors.New("a question needs at least two options")
	}
	if in.CorrectAnswer == "" {
		return errors.New("a correct answer is required")
	}
	for _, opt := range in.Options {
		if opt == in.CorrectAnswer {
			return nil
		}
	}
	return errors.New("the correct answer must be one of the options")
}
