package repository

import (
	"context"

	"quiz-platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByQuizID(ctx context.Context, quizID string) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, bson.M{"quiz_id": quizID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

// FindByIDs returns the questions for the given ids keyed by id, so callers
// can reassemble them in reference order.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Question, error) {
	byID := make(map[string]models.Question, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		byID[q.ID] = q
	}
	return byID, cur.Err()
}

func (r *QuestionRepository) Insert(ctx context.Context, question *models.Question) error {
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update bson.M) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByIDsForQuiz removes the given questions, scoped by quiz_id so an id
// belonging to another quiz can never be deleted through this path.
func (r *QuestionRepository) DeleteByIDsForQuiz(ctx context.Context, ids []string, quizID string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.Col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}, "quiz_id": quizID})
	return err
}

func (r *QuestionRepository) DeleteByQuizID(ctx context.Context, quizID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}
