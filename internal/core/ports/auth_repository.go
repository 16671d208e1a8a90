package ports

import (
	"context"

	"github.com/authcore/identity-api/internal/core/domain"
)

// UserRepository defines the persistence contract for users and their role
// assignments. Register and DeleteCascade must each run as a single atomic
// transaction so a user is never visible without its role.
type UserRepository interface {
	// Register inserts the user and its role assignment after checking that
	// neither the username nor the email is taken. Returns the new user id,
	// or domain.ErrDuplicateCredential on a conflict with either field.
	Register(ctx context.Context, user *domain.User, role string) (uint, error)

	// FindByIdentifier matches the identifier against username or email.
	// Uniqueness of both fields guarantees at most one result.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// GetRole returns the role assigned to the user, or
	// domain.ErrRoleNotFound when no assignment exists.
	GetRole(ctx context.Context, userID uint) (string, error)

	// DeleteCascade removes the user and its role assignment together.
	DeleteCascade(ctx context.Context, userID uint) error
}
