package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// RunTransaction executes fn inside a single MongoDB transaction. The quiz
// authoring protocol touches several documents per operation; wrapping those
// writes here is what makes them all-or-nothing.
func RunTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
