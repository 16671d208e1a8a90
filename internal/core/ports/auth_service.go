package ports

import "context"

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (uint, error)
	Login(ctx context.Context, identifier, password string) (string, error)
	DeleteAccount(ctx context.Context, userID uint) error
}
