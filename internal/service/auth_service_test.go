package service

import (
	"context"
	"errors"
	"testing"

	"quiz-platform/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type userStubStore struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newUserStubStore() *userStubStore {
	return &userStubStore{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (s *userStubStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *userStubStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *userStubStore) Insert(ctx context.Context, user *models.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return errors.New("duplicate email")
	}
	cp := *user
	s.byEmail[user.Email] = &cp
	s.byID[user.ID] = &cp
	return nil
}

func stubSigner(userID, role string) (string, error) {
	return "token:" + userID + ":" + role, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := newUserStubStore()
	svc := NewAuthService(store, stubSigner, "")

	res, err := svc.Register(context.Background(), "Ann", "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Role != models.RoleUser {
		t.Errorf("expected role %q, got %q", models.RoleUser, res.User.Role)
	}
	if res.Token != "token:"+res.User.ID+":"+res.User.Role {
		t.Errorf("unexpected token %q", res.Token)
	}
	if string(res.User.PasswordHash) == "secret1" {
		t.Errorf("password stored in clear")
	}

	if _, err := svc.Register(context.Background(), "Ann", "ann@example.com", "secret1"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate registration: want ErrConflict, got %v", err)
	}

	login, err := svc.Login(context.Background(), "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Errorf("login resolved wrong user")
	}

	if _, err := svc.Login(context.Background(), "ann@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong password: want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "missing@example.com", "secret1"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("unknown email: want ErrUnauthorized, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := NewAuthService(newUserStubStore(), stubSigner, "")

	if _, err := svc.Register(context.Background(), "", "a@b.com", "secret1"); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: want ErrValidation, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Ann", "", "secret1"); !errors.Is(err, ErrValidation) {
		t.Errorf("missing email: want ErrValidation, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Ann", "a@b.com", "short"); !errors.Is(err, ErrValidation) {
		t.Errorf("short password: want ErrValidation, got %v", err)
	}
}

func TestAuthAdminEmailGetsAdminRole(t *testing.T) {
	svc := NewAuthService(newUserStubStore(), stubSigner, "Boss@Example.com")

	res, err := svc.Register(context.Background(), "Boss", "boss@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Role != models.RoleAdmin {
		t.Errorf("expected admin role for configured email, got %q", res.User.Role)
	}
}

func TestAuthProfile(t *testing.T) {
	store := newUserStubStore()
	svc := NewAuthService(store, stubSigner, "")

	res, err := svc.Register(context.Background(), "Ann", "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	profile, err := svc.Profile(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.Email != "ann@example.com" {
		t.Errorf("unexpected profile email %q", profile.Email)
	}

	if _, err := svc.Profile(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user: want ErrNotFound, got %v", err)
	}
}
