package service

import (
	"context"
	"fmt"
	"time"

	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// QuizService implements the quiz authoring protocol: a quiz and its question
// documents are created, reconciled and deleted together inside one
// transaction, so readers never observe a quiz whose references dangle.
type QuizService struct {
	Client    *mongo.Client
	Quizzes   *repository.QuizRepository
	Questions *repository.QuestionRepository
	Results   *repository.ResultRepository

	newID func() string
	now   func() time.Time
}

func NewQuizService(client *mongo.Client, quizzes *repository.QuizRepository, questions *repository.QuestionRepository, results *repository.ResultRepository) *QuizService {
	return &QuizService{
		Client:    client,
		Quizzes:   quizzes,
		Questions: questions,
		Results:   results,
		newID:     func() string { return primitive.NewObjectID().Hex() },
		now:       time.Now,
	}
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.QuizDetail, error) {
	quizzes, err := s.Quizzes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]models.QuizDetail, 0, len(quizzes))
	for i := range quizzes {
		detail, err := s.resolve(ctx, &quizzes[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.QuizDetail, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "quiz")
	}
	return s.resolve(ctx, quiz)
}

// CreateQuiz inserts the quiz and its questions as one transaction: quiz with
// empty references first, then each question stamped with the quiz id, then
// the reference list in input order. Abort leaves no trace of any of them.
func (s *QuizService) CreateQuiz(ctx context.Context, user models.AuthUser, in *models.QuizInput) (*models.QuizDetail, error) {
	if err := in.ValidateCreate(); err != nil {
		return nil, validationErr(err)
	}

	quiz := &models.Quiz{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Duration:    in.Duration,
		QuestionIDs: []string{},
		CreatedBy:   user.ID,
		CreatedAt:   s.now(),
	}

	var questions []models.Question
	err := repository.RunTransaction(ctx, s.Client, func(sc mongo.SessionContext) error {
		questions = questions[:0]
		if err := s.Quizzes.Insert(sc, quiz); err != nil {
			return err
		}
		ids := make([]string, 0, len(in.Questions))
		for _, qin := range in.Questions {
			q := models.Question{
				ID:            s.newID(),
				QuizID:        quiz.ID,
				QuestionText:  qin.QuestionText,
				Options:       qin.Options,
				CorrectAnswer: qin.CorrectAnswer,
				CreatedAt:     s.now(),
			}
			if err := s.Questions.Insert(sc, &q); err != nil {
				return err
			}
			ids = append(ids, q.ID)
			questions = append(questions, q)
		}
		quiz.QuestionIDs = ids
		return s.Quizzes.Update(sc, quiz.ID, bson.M{"questions": ids})
	})
	if err != nil {
		return nil, fmt.Errorf("create quiz transaction: %w", err)
	}
	return &models.QuizDetail{Quiz: *quiz, Questions: questions}, nil
}

// UpdateQuiz reconciles the stored question set against the incoming one:
// incoming questions carrying a known id are updated in place, the rest are
// inserted, and stored questions no longer referenced are deleted. The final
// reference list follows the caller's submitted order exactly. A body
// without a questions field updates metadata only and keeps the stored set.
func (s *QuizService) UpdateQuiz(ctx context.Context, user models.AuthUser, quizID string, in *models.QuizInput) (*models.QuizDetail, error) {
	if err := in.ValidateUpdate(); err != nil {
		return nil, validationErr(err)
	}

	var quiz *models.Quiz
	err := repository.RunTransaction(ctx, s.Client, func(sc mongo.SessionContext) error {
		var err error
		quiz, err = s.Quizzes.FindByID(sc, quizID)
		if err != nil {
			return asNotFound(err, "quiz")
		}
		if !user.IsOwnerOrAdmin(quiz.CreatedBy) {
			return fmt.Errorf("not authorized to update this quiz: %w", ErrForbidden)
		}

		plan := planReconcile(quiz.QuestionIDs, in.Questions, s.newID)

		if err := s.Questions.DeleteByIDsForQuiz(sc, plan.toDelete, quiz.ID); err != nil {
			return err
		}
		for _, qin := range plan.inserts {
			q := models.Question{
				ID:            qin.ID,
				QuizID:        quiz.ID,
				QuestionText:  qin.QuestionText,
				Options:       qin.Options,
				CorrectAnswer: qin.CorrectAnswer,
				CreatedAt:     s.now(),
			}
			if err := s.Questions.Insert(sc, &q); err != nil {
				return err
			}
		}
		for _, qin := range plan.updates {
			update := bson.M{
				"question_text":  qin.QuestionText,
				"options":        qin.Options,
				"correct_answer": qin.CorrectAnswer,
			}
			if err := s.Questions.Update(sc, qin.ID, update); err != nil {
				return err
			}
		}

		patch := bson.M{"questions": plan.order}
		if in.Title != "" {
			quiz.Title = in.Title
		}
		if in.Description != "" {
			quiz.Description = in.Description
		}
		if in.Category != "" {
			quiz.Category = in.Category
		}
		if in.Duration > 0 {
			quiz.Duration = in.Duration
		}
		patch["title"] = quiz.Title
		patch["description"] = quiz.Description
		patch["category"] = quiz.Category
		patch["duration"] = quiz.Duration
		quiz.QuestionIDs = plan.order
		return s.Quizzes.Update(sc, quiz.ID, patch)
	})
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, quiz)
}

// DeleteQuiz removes the quiz with its questions and results, children
// before parent, in one transaction.
func (s *QuizService) DeleteQuiz(ctx context.Context, user models.AuthUser, quizID string) error {
	return repository.RunTransaction(ctx, s.Client, func(sc mongo.SessionContext) error {
		quiz, err := s.Quizzes.FindByID(sc, quizID)
		if err != nil {
			return asNotFound(err, "quiz")
		}
		if !user.IsOwnerOrAdmin(quiz.CreatedBy) {
			return fmt.Errorf("not authorized to delete this quiz: %w", ErrForbidden)
		}
		if err := s.Questions.DeleteByQuizID(sc, quiz.ID); err != nil {
			return err
		}
		if err := s.Results.DeleteByQuizID(sc, quiz.ID); err != nil {
			return err
		}
		return s.Quizzes.Delete(sc, quiz.ID)
	})
}

// resolve turns a quiz's reference list into full question documents in
// presentation order. References without a backing document are skipped.
func (s *QuizService) resolve(ctx context.Context, quiz *models.Quiz) (*models.QuizDetail, error) {
	byID, err := s.Questions.FindByIDs(ctx, quiz.QuestionIDs)
	if err != nil {
		return nil, err
	}
	questions := make([]models.Question, 0, len(quiz.QuestionIDs))
	for _, id := range quiz.QuestionIDs {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	return &models.QuizDetail{Quiz: *quiz, Questions: questions}, nil
}

// reconcilePlan is the outcome of diffing a quiz's stored question ids
// against an incoming question set.
type reconcilePlan struct {
	updates  []models.QuestionInput // carry an id already referenced by the quiz
	inserts  []models.QuestionInput // assigned a fresh id
	toDelete []string               // stored ids the incoming set no longer carries
	order    []string               // final reference list, caller-submitted order
}

// A nil incoming set means the caller did not send a questions field at all
// (a metadata-only update): the stored set is left untouched. An explicit
// empty array still deletes every question.
func planReconcile(existing []string, incoming []models.QuestionInput, newID func() string) reconcilePlan {
	if incoming == nil {
		return reconcilePlan{order: append([]string{}, existing...)}
	}
	known := make(map[string]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	var plan reconcilePlan
	kept := make(map[string]bool, len(incoming))
	for _, qin := range incoming {
		if qin.ID != "" && known[qin.ID] {
			plan.updates = append(plan.updates, qin)
			kept[qin.ID] = true
		} else {
			qin.ID = newID()
			plan.inserts = append(plan.inserts, qin)
		}
		plan.order = append(plan.order, qin.ID)
	}
	for _, id := range existing {
		if !kept[id] {
			plan.toDelete = append(plan.toDelete, id)
		}
	}
	if plan.order == nil {
		plan.order = []string{}
	}
	return plan
}
