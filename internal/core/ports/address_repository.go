package ports

import (
	"context"

	"github.com/usermgmt/user-address-api/internal/core/domain"
)

// AddressRepository defines persistence operations for addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) (*domain.Address, error)
	FindByID(ctx context.Context, id int64) (*domain.Address, error)
	// FindByIDAndOwner retrieves an address only when it belongs to ownerID.
	// A miss is indistinguishable from a nonexistent id.
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Address, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Address, error)
	Update(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, id int64) error
	// DeleteByOwner removes every address owned by ownerID (cascade on user delete).
	DeleteByOwner(ctx context.Context, ownerID int64) error
	List(ctx context.Context, filter PageFilter) ([]*domain.Address, int64, error)
}
