package models

import (
	"errors"
	"time"
)

type Quiz struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	QuestionIDs []string  `bson:"questions" json:"-"`
	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// QuizDetail is the API shape of a quiz with its question references
// resolved into full documents, in presentation order.
type QuizDetail struct {
	Quiz      `bson:",inline"`
	Questions []Question `bson:"-" json:"questions"`
}

// QuizInput is the request body for quiz creation and update. On update,
// empty top-level fields keep their prior value and each question may carry
// the id of an existing question it replaces.
type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Duration    int             `json:"duration"`
	Questions   []QuestionInput `json:"questions"`
}

func (in *QuizInput) ValidateCreate() error {
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return errors.New("title, description and category are required")
	}
	if in.Duration < 1 {
		return errors.New("duration must be at least 1 minute")
	}
	if len(in.Questions) == 0 {
		return errors.New("a quiz needs at least one question")
	}
	for i := range in.Questions {
		if err := in.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (in *QuizInput) ValidateUpdate() error {
	if in.Duration < 0 {
		return errors.New("duration must be at least 1 minute")
	}
	for i := range in.Questions {
		if err := in.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
