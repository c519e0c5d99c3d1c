package ports

import (
	"context"
	"time"

	"github.com/usermgmt/user-address-api/internal/core/access"
	"github.com/usermgmt/user-address-api/internal/core/domain"
)

// AddressInput carries caller-supplied address data. Street, neighborhood,
// city and state are accepted but always overwritten with the canonical
// values returned by the postal lookup.
type AddressInput struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
	Type         domain.AddressType
}

// AddressRecord is the outbound projection of an address. Owner is populated
// with the owning account's password-free summary on create.
type AddressRecord struct {
	ID           int64              `json:"id"`
	Street       string             `json:"street"`
	Number       string             `json:"number"`
	Complement   string             `json:"complement,omitempty"`
	Neighborhood string             `json:"neighborhood"`
	City         string             `json:"city"`
	State        string             `json:"state"`
	ZipCode      string             `json:"zip_code"`
	Type         domain.AddressType `json:"type"`
	UserID       int64              `json:"user_id"`
	Owner        *UserRecord        `json:"owner,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// AddressPage is a page of address records.
type AddressPage struct {
	Items      []AddressRecord `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalPages int             `json:"total_pages"`
}

// AddressService defines use-case operations for addresses. GetByID, Update
// and Delete apply the ownership policy: admins reach any address (missing id
// fails with ErrAddressNotFound), everyone else only their own (missing or
// foreign ids both fail with ErrAddressAccessDenied).
type AddressService interface {
	Create(ctx context.Context, input *AddressInput, ownerID int64) (*AddressRecord, error)
	List(ctx context.Context, filter PageFilter) (*AddressPage, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]AddressRecord, error)
	GetByID(ctx context.Context, principal access.Principal, id int64) (*AddressRecord, error)
	Update(ctx context.Context, principal access.Principal, id int64, input *AddressInput) (*AddressRecord, error)
	Delete(ctx context.Context, principal access.Principal, id int64) error
}
