package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourhostel/stat-syncer/internal/domain"
	"github.com/yourhostel/stat-syncer/internal/repository"
)

// defaultRoles are assigned to every signed-up user.
var defaultRoles = []string{"ROLE_USER"}

// AuthService handles signup and login.
type AuthService struct {
	users      repository.UserRepository
	tokens     *TokenService
	bcryptCost int
}

// NewAuthService creates a new auth service.
// Returns nil if either dependency is missing.
func NewAuthService(users repository.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	if users == nil || tokens == nil {
		return nil
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// TokenTTL returns the lifetime of issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Signup creates a new credential record with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.CreateUser(ctx, username, string(hash), defaultRoles)
}

// Login verifies the credentials and issues a signed token.
// Unknown users and wrong passwords both surface as ErrBadCredential
// so responses don't leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", domain.ErrBadCredential
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrBadCredential
	}

	return s.tokens.GenerateToken(user.Username, user.Roles)
}
