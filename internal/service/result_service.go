package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultService records quiz submissions and serves result reads. Scores are
// recomputed server-side from the submitted answers against the quiz's stored
// answer key; the caller-supplied score is accepted but never trusted.
type ResultService struct {
	Results   *repository.ResultRepository
	Quizzes   *repository.QuizRepository
	Questions *repository.QuestionRepository
	Users     *repository.UserRepository

	newID func() string
	now   func() time.Time
}

func NewResultService(results *repository.ResultRepository, quizzes *repository.QuizRepository, questions *repository.QuestionRepository, users *repository.UserRepository) *ResultService {
	return &ResultService{
		Results:   results,
		Quizzes:   quizzes,
		Questions: questions,
		Users:     users,
		newID:     func() string { return primitive.NewObjectID().Hex() },
		now:       time.Now,
	}
}

func (s *ResultService) Submit(ctx context.Context, user models.AuthUser, in *models.ResultInput) (*models.Result, error) {
	if in.QuizID == "" || in.Score == nil || in.TotalQuestions == nil {
		return nil, validationErr(errors.New("quiz_id, score and total_questions are required"))
	}

	quiz, err := s.Quizzes.FindByID(ctx, in.QuizID)
	if err != nil {
		return nil, asNotFound(err, "quiz")
	}
	if len(quiz.QuestionIDs) == 0 {
		return nil, validationErr(errors.New("quiz has no questions"))
	}

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

	answers := in.UserAnswers
	if answers == nil {
		answers = map[string]string{}
	}

	result := &models.Result{
		ID:             s.newID(),
		UserID:         user.ID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          ComputeScore(questions, answers),
		TotalQuestions: len(questions),
		UserAnswers:    answers,
		SubmittedAt:    s.now(),
	}
	if err := s.Results.Insert(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ResultService) GetMyResults(ctx context.Context, user models.AuthUser) ([]models.Result, error) {
	return s.Results.FindByUser(ctx, user.ID)
}

// GetAllResults returns every result, newest first, with the submitting
// user's display fields resolved. Admin only, enforced at the route layer.
func (s *ResultService) GetAllResults(ctx context.Context) ([]models.ResultDetail, error) {
	results, err := s.Results.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
	}
	users, err := s.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	details := make([]models.ResultDetail, 0, len(results))
	for _, r := range results {
		detail := models.ResultDetail{Result: r}
		if u, ok := users[r.UserID]; ok {
			detail.UserName = u.Name
			detail.UserEmail = u.Email
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *ResultService) GetResult(ctx context.Context, user models.AuthUser, id string) (*models.Result, error) {
	result, err := s.Results.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "result")
	}
	if !user.IsOwnerOrAdmin(result.UserID) {
		return nil, fmt.Errorf("not authorized to view this result: %w", ErrForbidden)
	}
	return result, nil
}

// ComputeScore counts answers matching each question's correct answer.
// Answers are keyed by 0-based question position in presentation order.
func ComputeScore(questions []models.Question, answers map[string]string) int {
	score := 0
	for i, q := range questions {
		if selected, ok := answers[strconv.Itoa(i)]; ok && selected == q.CorrectAnswer {
			score++
		}
	}
	return score
}
