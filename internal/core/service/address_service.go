package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-address-api/internal/core/access"
	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

// AddressService implements address management under the ownership policy,
// reconciling caller-supplied fields against the postal lookup on every write.
type AddressService struct {
	repo  ports.AddressRepository
	users ports.UserRepository
	cep   ports.CepLookup
	log   zerolog.Logger
}

func NewAddressService(repo ports.AddressRepository, users ports.UserRepository, cep ports.CepLookup, log zerolog.Logger) *AddressService {
	return &AddressService{repo: repo, users: users, cep: cep, log: log}
}

// Create validates the owner, resolves the postal code, and persists the
// address with street/neighborhood/city/state taken from the lookup, never
// from input.
func (s *AddressService) Create(ctx context.Context, input *ports.AddressInput, ownerID int64) (*ports.AddressRecord, error) {
	if input == nil {
		return nil, domain.ErrInvalidInput
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAddressAccessDenied
		}
		return nil, err
	}

	canonical, err := s.resolveCep(ctx, input.ZipCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	address := &domain.Address{
		Street:       canonical.Street,
		Number:       input.Number,
		Complement:   input.Complement,
		Neighborhood: canonical.Neighborhood,
		City:         canonical.City,
		State:        canonical.State,
		ZipCode:      input.ZipCode,
		Type:         input.Type,
		UserID:       owner.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, address)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", ownerID).Msg("failed to create address")
		return nil, err
	}

	s.log.Info().Int64("address_id", created.ID).Int64("user_id", ownerID).Msg("address created")

	record := toAddressRecord(created)
	ownerRecord := toUserRecord(owner)
	record.Owner = &ownerRecord
	return &record, nil
}

func (s *AddressService) List(ctx context.Context, filter ports.PageFilter) (*ports.AddressPage, error) {
	normalizeFilter(&filter, "street")

	addresses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ports.AddressRecord, 0, len(addresses))
	for _, a := range addresses {
		items = append(items, toAddressRecord(a))
	}

	return &ports.AddressPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages(total, filter.Size),
	}, nil
}

func (s *AddressService) ListByOwner(ctx context.Context, ownerID int64) ([]ports.AddressRecord, error) {
	addresses, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]ports.AddressRecord, 0, len(addresses))
	for _, a := range addresses {
		items = append(items, toAddressRecord(a))
	}
	return items, nil
}

func (s *AddressService) GetByID(ctx context.Context, principal access.Principal, id int64) (*ports.AddressRecord, error) {
	address, err := s.locate(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	record := toAddressRecord(address)
	return &record, nil
}

// Update re-derives the canonical fields from the lookup even when the
// postal code is unchanged: the external registry is the sole source of
// truth for street/neighborhood/city/state on every write.
func (s *AddressService) Update(ctx context.Context, principal access.Principal, id int64, input *ports.AddressInput) (*ports.AddressRecord, error) {
	if input == nil {
		return nil, domain.ErrInvalidInput
	}

	address, err := s.locate(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	canonical, err := s.resolveCep(ctx, input.ZipCode)
	if err != nil {
		return nil, err
	}

	address.Street = canonical.Street
	address.Neighborhood = canonical.Neighborhood
	address.City = canonical.City
	address.State = canonical.State
	address.Number = input.Number
	address.Complement = input.Complement
	address.ZipCode = input.ZipCode
	address.Type = input.Type
	address.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, err
	}

	s.log.Info().Int64("address_id", id).Msg("address updated")

	record := toAddressRecord(address)
	return &record, nil
}

func (s *AddressService) Delete(ctx context.Context, principal access.Principal, id int64) error {
	address, err := s.locate(ctx, principal, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, address.ID); err != nil {
		return err
	}

	s.log.Info().Int64("address_id", id).Msg("address deleted")
	return nil
}

// locate applies the ownership policy. Admins reach any address and see
// ErrAddressNotFound for missing ids. Everyone else is scoped to their own
// addresses; a foreign id and a nonexistent id fail identically with
// ErrAddressAccessDenied so callers cannot probe for existence.
func (s *AddressService) locate(ctx context.Context, principal access.Principal, id int64) (*domain.Address, error) {
	if principal.IsAdmin() {
		return s.repo.FindByID(ctx, id)
	}

	address, err := s.repo.FindByIDAndOwner(ctx, id, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			return nil, domain.ErrAddressAccessDenied
		}
		return nil, err
	}
	return address, nil
}

// resolveCep queries the lookup provider and normalizes every negative
// outcome (transport error, nil result, empty canonical code, not-found
// flag) into ErrInvalidCep.
func (s *AddressService) resolveCep(ctx context.Context, cep string) (*ports.CepResult, error) {
	result, err := s.cep.Lookup(ctx, cep)
	if err != nil {
		s.log.Warn().Err(err).Str("cep", cep).Msg("postal lookup failed")
		return nil, domain.ErrInvalidCep
	}
	if result == nil || result.Cep == "" || result.NotFound {
		return nil, domain.ErrInvalidCep
	}
	return result, nil
}

func toAddressRecord(a *domain.Address) ports.AddressRecord {
	return ports.AddressRecord{
		ID:           a.ID,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
		Type:         a.Type,
		UserID:       a.UserID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
