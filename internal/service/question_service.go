package service

import (
	"context"
	"errors"
	"time"

	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// QuestionService manages questions outside the quiz authoring protocol.
// Create and Delete still keep the owning quiz's reference list in step,
// inside a transaction, so a standalone edit can never orphan a reference.
type QuestionService struct {
	Client    *mongo.Client
	Questions *repository.QuestionRepository
	Quizzes   *repository.QuizRepository

	newID func() string
	now   func() time.Time
}

func NewQuestionService(client *mongo.Client, questions *repository.QuestionRepository, quizzes *repository.QuizRepository) *QuestionService {
	return &QuestionService{
		Client:    client,
		Questions: questions,
		Quizzes:   quizzes,
		newID:     func() string { return primitive.NewObjectID().Hex() },
		now:       time.Now,
	}
}

func (s *QuestionService) ListByQuiz(ctx context.Context, quizID string) ([]models.Question, error) {
	return s.Questions.FindByQuizID(ctx, quizID)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, in *models.QuestionCreateInput) (*models.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, validationErr(err)
	}

	question := &models.Question{
		ID:            s.newID(),
		QuizID:        in.QuizID,
		QuestionText:  in.QuestionText,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		CreatedAt:     s.now(),
	}
	err := repository.RunTransaction(ctx, s.Client, func(sc mongo.SessionContext) error {
		quiz, err := s.Quizzes.FindByID(sc, in.QuizID)
		if err != nil {
			return asNotFound(err, "quiz")
		}
		if err := s.Questions.Insert(sc, question); err != nil {
			return err
		}
		refs := append(quiz.QuestionIDs, question.ID)
		return s.Quizzes.Update(sc, quiz.ID, bson.M{"questions": refs})
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, in *models.QuestionInput) (*models.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, validationErr(err)
	}
	question, err := s.Questions.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "question")
	}
	update := bson.M{
		"question_text":  in.QuestionText,
		"options":        in.Options,
		"correct_answer": in.CorrectAnswer,
	}
	if err := s.Questions.Update(ctx, id, update); err != nil {
		return nil, err
	}
	question.QuestionText = in.QuestionText
	question.Options = in.Options
	question.CorrectAnswer = in.CorrectAnswer
	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return repository.RunTransaction(ctx, s.Client, func(sc mongo.SessionContext) error {
		question, err := s.Questions.FindByID(sc, id)
		if err != nil {
			return asNotFound(err, "question")
		}
		if err := s.Questions.Delete(sc, question.ID); err != nil {
			return err
		}
		quiz, err := s.Quizzes.FindByID(sc, question.QuizID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The owning quiz is already gone; nothing to unlink.
			return nil
		}
		if err != nil {
			return err
		}
		refs := make([]string, 0, len(quiz.QuestionIDs))
		for _, ref := range quiz.QuestionIDs {
			if ref != question.ID {
				refs = append(refs, ref)
			}
		}
		return s.Quizzes.Update(sc, quiz.ID, bson.M{"questions": refs})
	})
}
