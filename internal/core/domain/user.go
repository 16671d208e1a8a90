package domain

import (
	"errors"
	"time"
)

const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

var ErrDuplicateCredential = errors.New("username or email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("user role not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token expired")
var ErrForbidden = errors.New("access forbidden")

// User models a registered account. Username and email are immutable after
// creation and each unique across all users.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// RoleAssignment binds exactly one role to a user. It is created together
// with the user at signup and removed together with it.
type RoleAssignment struct {
	UserID uint   `json:"user_id" gorm:"primaryKey"`
	Role   string `json:"role" gorm:"size:20;not null"`
}

func (RoleAssignment) TableName() string { return "users_role" }
