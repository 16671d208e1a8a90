package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/authcore/identity-api/internal/core/domain"
)

// UserRepository is the GORM-backed implementation of ports.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Register runs the uniqueness check, user insert, and role insert inside
// one transaction, closing the check-then-insert race between concurrent
// signups with the same username or email.
func (r *UserRepository) Register(ctx context.Context, user *domain.User, role string) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check existing credentials: %w", err)
		}
		if count > 0 {
			return domain.ErrDuplicateCredential
		}

		if err := tx.Create(user).Error; err != nil {
			// Unique index violation from a signup that won the race.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateCredential
			}
			return fmt.Errorf("insert user: %w", err)
		}

		assignment := &domain.RoleAssignment{UserID: user.ID, Role: role}
		if err := tx.Create(assignment).Error; err != nil {
			return fmt.Errorf("insert role assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// FindByIdentifier matches either the username or the email column. Both
// carry unique indexes, so at most one row can match.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetRole(ctx context.Context, userID uint) (string, error) {
	var assignment domain.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRoleNotFound
		}
		return "", fmt.Errorf("find role assignment: %w", err)
	}
	return assignment.Role, nil
}

// DeleteCascade removes the role assignment and the user in one
// transaction so no orphan assignment can remain queryable.
func (r *UserRepository) DeleteCascade(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&domain.RoleAssignment{}).Error; err != nil {
			return fmt.Errorf("delete role assignment: %w", err)
		}

		res := tx.Delete(&domain.User{}, userID)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
