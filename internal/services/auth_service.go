package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthResult is what a successful register or login hands back to the caller.
type AuthResult struct {
	Token     string
	Username  string
	Email     string
	ExpiresAt time.Time
}

// AuthService handles business logic for registration and login.
type AuthService struct {
	store     repositories.Store
	tokens    *TokenService
	hashCost  int
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repositories.Store, tokens *TokenService) *AuthService {
	s := &AuthService{
		store:    store,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
	// Compared against when the email is unknown so that both failure paths
	// cost one bcrypt verification.
	hash, err := bcrypt.GenerateFromPassword([]byte("inventory-unknown-user"), s.hashCost)
	if err != nil {
		log.Printf("Failed to prepare dummy password hash: %v", err)
	}
	s.dummyHash = hash
	return s
}

// Register creates an active user and returns a token for it. The email is
// checked before the username.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	user := &models.User{
		Username: username,
		Email:    email,
		IsActive: true,
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		users := tx.Users()

		exists, err := users.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return conflictError("email already exists", nil)
		}

		exists, err = users.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return conflictError("username already exists", nil)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)

		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return conflictError("email or username already exists", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies the credentials of an active user and returns a token.
// Every failure is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}
