package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

const maxPageSize = 100

// UserService implements account management: email uniqueness, password
// hashing, role defaults, and the explicit address cascade on delete.
type UserService struct {
	repo      ports.UserRepository
	addresses ports.AddressRepository
	log       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, addresses ports.AddressRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, addresses: addresses, log: log}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserRecord, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Fast-fail on duplicates; the unique email index is the backstop for
	// the race between this check and the insert.
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailAlreadyUsed
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Msg("user created")

	record := toUserRecord(created)
	return &record, nil
}

func (s *UserService) List(ctx context.Context, filter ports.PageFilter) (*ports.UserPage, error) {
	normalizeFilter(&filter, "name")

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ports.UserRecord, 0, len(users))
	for _, u := range users {
		items = append(items, toUserRecord(u))
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages(total, filter.Size),
	}, nil
}

func (s *UserService) SearchByName(ctx context.Context, name string) ([]ports.UserRecord, error) {
	users, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	items := make([]ports.UserRecord, 0, len(users))
	for _, u := range users {
		items = append(items, toUserRecord(u))
	}
	return items, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*ports.UserRecord, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record := toUserRecord(user)
	return &record, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*ports.UserRecord, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	record := toUserRecord(user)
	return &record, nil
}

// Update replaces name, email and role wholesale. Role is not re-validated
// against the caller here: role changes must be gated upstream, the way
// UpdateRole's route is.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*ports.UserRecord, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
			return nil, domain.ErrEmailAlreadyUsed
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	user.Name = input.Name
	user.Email = input.Email
	if input.Role != "" {
		if !domain.ValidRole(input.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user updated")

	record := toUserRecord(user)
	return &record, nil
}

// UpdateRole sets the role unconditionally. Only safe behind an admin role
// gate, which the router applies before this runs.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) (*ports.UserRecord, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Str("role", role).Msg("user role updated")

	record := toUserRecord(user)
	return &record, nil
}

// Delete removes the user and, first, every address it owns. The cascade is
// explicit: two deletes in sequence rather than a storage-side side effect.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.addresses.DeleteByOwner(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func toUserRecord(u *domain.User) ports.UserRecord {
	return ports.UserRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizeFilter(f *ports.PageFilter, defaultSort string) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = 10
	}
	if f.Size > maxPageSize {
		f.Size = maxPageSize
	}
	if f.SortBy == "" {
		f.SortBy = defaultSort
	}
	if f.Direction != "desc" {
		f.Direction = "asc"
	}
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
