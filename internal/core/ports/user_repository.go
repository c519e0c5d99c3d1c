package ports

import (
	"context"

	"github.com/usermgmt/user-address-api/internal/core/domain"
)

// PageFilter carries pagination and sorting for list queries.
type PageFilter struct {
	Page      int    // 1-based
	Size      int    // rows per page (capped at 100 by the services)
	SortBy    string // field name; repositories reject unknown fields by falling back to their default
	Direction string // "asc" or "desc"
}

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is ultimately guaranteed by a unique index at the storage
// layer; the service-level pre-check is a fast-fail, not the sole guarantee.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByName returns users whose name contains the given substring.
	FindByName(ctx context.Context, name string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter PageFilter) ([]*domain.User, int64, error)
}
