package ports

import "context"

// AuthRepo yields the admin password; empty means login is disabled.
type AuthRepo interface {
	GetPassword(ctx context.Context) (string, error)
}

// AuthService issues and checks the bearer token for the history API.
type AuthService interface {
	Login(ctx context.Context, password string) (token string, err error)
	ValidateToken(ctx context.Context, token string) (bool, error)
}
