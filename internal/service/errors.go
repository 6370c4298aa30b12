package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors translated to HTTP statuses at the handler layer.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// asNotFound maps a missing-document lookup error onto the taxonomy.
func asNotFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFoundErr(what)
	}
	return err
}
