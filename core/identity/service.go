// Package identity implements account registration, login and profile
// lookup on top of a UserRepository and the session token codec.
package identity

import (
	"context"
	"errors"

	"MusicHub/core/apperror"
	"MusicHub/core/auth"
	"MusicHub/model"
	"MusicHub/repository"
)

// Client-facing messages.
const (
	MsgFieldsRequired      = "All fields are required"
	MsgCredentialsRequired = "Email and password are required"
	MsgUserExists          = "User already exists"
	MsgUserNotFound        = "User not found"
	MsgInvalidCredentials  = "Invalid credentials"
)

// TokenIssuer issues session tokens for a user id.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Service handles user accounts.
type Service struct {
	users  repository.UserRepository
	tokens TokenIssuer
	hash   func(string) (string, error)
	verify func(password, hash string) bool
}

// NewService creates an identity service.
func NewService(users repository.UserRepository, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hash:   auth.HashPassword,
		verify: auth.VerifyPassword,
	}
}

// Register creates a new account. No token is issued.
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperror.Validation(MsgFieldsRequired)
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.Conflict(MsgUserExists)
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, apperror.Wrap(err, "failed to look up user")
	}

	hashed, err := s.hash(password)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to hash password")
	}

	user := &model.User{Username: username, Email: email, PasswordHash: hashed}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, apperror.Conflict(MsgUserExists)
		}
		return nil, apperror.Wrap(err, "failed to create user")
	}
	return user, nil
}

// Login checks credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.Validation(MsgCredentialsRequired)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperror.NotFound(MsgUserNotFound)
		}
		return "", apperror.Wrap(err, "failed to look up user")
	}

	if !s.verify(password, user.PasswordHash) {
		return "", apperror.Auth(MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Wrap(err, "failed to issue token")
	}
	return token, nil
}

// Profile returns the user with the given id.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound(MsgUserNotFound)
		}
		return nil, apperror.Wrap(err, "failed to look up user")
	}
	return user, nil
}
