package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TokenSigner issues a bearer token for an authenticated user.
type TokenSigner func(userID, role string) (string, error)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

var _ UserStore = (*repository.UserRepository)(nil)

type AuthService struct {
	Users      UserStore
	signToken  TokenSigner
	adminEmail string

	newID func() string
	now   func() time.Time
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// NewAuthService wires the user store and the token signer. adminEmail, when
// non-empty, names the account that registers with the admin role.
func NewAuthService(users UserStore, signer TokenSigner, adminEmail string) *AuthService {
	return &AuthService{
		Users:      users,
		signToken:  signer,
		adminEmail: adminEmail,
		newID:      func() string { return primitive.NewObjectID().Hex() },
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, validationErr(errors.New("name and email are required"))
	}
	if len(password) < 6 {
		return nil, validationErr(errors.New("password must be at least 6 characters"))
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if s.adminEmail != "" && email == strings.ToLower(s.adminEmail) {
		role = models.RoleAdmin
	}
	user := &models.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationErr(errors.New("email and password are required"))
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, err := s.signToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}
	return user, nil
}
