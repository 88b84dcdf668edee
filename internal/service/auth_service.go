package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"authbase/internal/apperror"
	"authbase/internal/auth"
	"authbase/internal/model"
	"authbase/internal/repository"
)

const bcryptCost = 10

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (user *model.User, token string, err error)
	Login(ctx context.Context, email, password string) (user *model.User, token string, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
	}
}

// Register creates a user with a hashed password and issues a fresh token.
// Uniqueness of username and email is enforced by the store; duplicate-key
// failures arrive here already translated to Conflict errors.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: string(hashedPassword),
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a fresh token. A missing account and
// a wrong password produce the identical error so callers cannot enumerate
// registered emails.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return nil, "", apperror.NewUnauthenticated("incorrect email or password", nil)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.NewUnauthenticated("incorrect email or password", nil)
	}

	if !user.Active {
		return nil, "", apperror.NewForbidden("account deactivated", nil)
	}

	token, _, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}
