package repository

import (
	"context"

	"quiz-platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

func (r *ResultRepository) Insert(ctx context.Context, result *models.Result) error {
	_, err := r.Col.InsertOne(ctx, result)
	return err
}

func (r *ResultRepository) FindByID(ctx context.Context, id string) (*models.Result, error) {
	var result models.Result
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.Result, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ResultRepository) FindAll(ctx context.Context) ([]models.Result, error) {
	return r.find(ctx, bson.M{})
}

func (r *ResultRepository) DeleteByQuizID(ctx context.Context, quizID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}

func (r *ResultRepository) find(ctx context.Context, filter bson.M) ([]models.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.Result
	for cur.Next(ctx) {
		var res models.Result
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, cur.Err()
}
