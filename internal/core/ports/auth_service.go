package ports

import "context"

// AuthService authenticates credentials and issues signed tokens.
type AuthService interface {
	// Login verifies email+password and returns a signed token plus the
	// authenticated account. Unknown emails and wrong passwords both fail
	// with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *UserRecord, error)
}
