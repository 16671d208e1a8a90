package service

import (
	"context"
	"errors"
	"time"

	"github.com/authcore/identity-api/internal/core/domain"
	"github.com/authcore/identity-api/internal/core/ports"
)

// AuthService implements signup, login, and account deletion on top of the
// user repository, password hasher, and token service.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Signup hashes the password and registers the user with the default viewer
// role in a single atomic step. Role elevation has no self-service path.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (uint, error) {
	if username == "" || email == "" || password == "" {
		return 0, domain.ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Register(ctx, user, domain.RoleViewer)
}

// Login authenticates by username or email and returns a signed access
// token. An unknown identifier and a wrong password are indistinguishable to
// the caller; a user without a role assignment is rejected as
// mis-provisioned rather than defaulted to viewer.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, error) {
	if identifier == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	role, err := s.repo.GetRole(ctx, user.ID)
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(ports.Claims{UserID: user.ID, Role: role})
}

// DeleteAccount removes the user and its role assignment together. Tokens
// already issued for the account stay valid until they expire.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.repo.DeleteCascade(ctx, userID)
}
