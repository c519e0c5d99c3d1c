package ports

import (
	"context"
	"time"
)

// UserRecord is the outbound projection of a user account. It structurally
// omits the password hash, so no credential can leak through serialization.
type UserRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput carries the data needed to register a new account.
// Role defaults to USER when empty.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput replaces name, email and role wholesale. Password is only
// re-hashed when non-blank; otherwise the stored hash is retained.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserPage is a page of user records.
type UserPage struct {
	Items      []UserRecord `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalPages int          `json:"total_pages"`
}

// UserService defines use-case operations for user accounts. Role gating for
// privileged operations (List, UpdateRole, Delete) is the transport layer's
// responsibility and happens before these methods run.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*UserRecord, error)
	List(ctx context.Context, filter PageFilter) (*UserPage, error)
	SearchByName(ctx context.Context, name string) ([]UserRecord, error)
	GetByID(ctx context.Context, id int64) (*UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*UserRecord, error)
	UpdateRole(ctx context.Context, id int64, role string) (*UserRecord, error)
	Delete(ctx context.Context, id int64) error
}
