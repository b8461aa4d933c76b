package service

import (
	"errors"
	"fmt"

	"vocabquest/internal/database"
	"vocabquest/internal/models"
	"vocabquest/internal/repository"
	"vocabquest/internal/security"
	"vocabquest/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration and password login
type AuthService struct {
	users  *repository.UserRepository
	tokens *security.TokenIssuer
}

func NewAuthService(db *database.DB, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{
		users:  repository.NewUserRepository(db),
		tokens: tokens,
	}
}

// Register creates a new account and returns the user with a signed token
func (s *AuthService) Register(email, password, name string) (*models.User, string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, "", err
	}

	existing, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(email, hash, name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}
