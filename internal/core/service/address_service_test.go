package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-address-api/internal/core/access"
	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

type fakeCepLookup struct {
	result *ports.CepResult
	err    error
	calls  int
}

func (f *fakeCepLookup) Lookup(_ context.Context, _ string) (*ports.CepResult, error) {
	f.calls++
	return f.result, f.err
}

func canonicalSe() *ports.CepResult {
	return &ports.CepResult{
		Cep:          "01001-000",
		Street:       "Praça da Sé",
		Neighborhood: "Sé",
		City:         "São Paulo",
		State:        "SP",
	}
}

func newAddressService(lookup *fakeCepLookup) (*AddressService, *stubUserRepo, *stubAddressRepo) {
	users := newStubUserRepo()
	addresses := newStubAddressRepo()
	return NewAddressService(addresses, users, lookup, zerolog.Nop()), users, addresses
}

func seedUser(t *testing.T, users *stubUserRepo, email, role string) *domain.User {
	t.Helper()
	user, err := users.Create(context.Background(), &domain.User{
		Name:         "Someone",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func principalFor(u *domain.User) access.Principal {
	return access.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func sampleInput() *ports.AddressInput {
	return &ports.AddressInput{
		Street:       "Rua Inventada", // must be discarded
		Number:       "100",
		Complement:   "apto 42",
		Neighborhood: "Bairro Falso",
		City:         "Cidade Falsa",
		State:        "XX",
		ZipCode:      "01001000",
		Type:         domain.AddressResidential,
	}
}

func TestAddressService_Create_OverwritesCanonicalFields(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, _ := newAddressService(lookup)
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)

	record, err := svc.Create(context.Background(), sampleInput(), owner.ID)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if record.Street != "Praça da Sé" || record.Neighborhood != "Sé" || record.City != "São Paulo" || record.State != "SP" {
		t.Fatalf("expected canonical fields from lookup, got %+v", record)
	}
	if record.Number != "100" || record.Complement != "apto 42" || record.ZipCode != "01001000" || record.Type != domain.AddressResidential {
		t.Fatalf("expected caller-supplied fields to be kept, got %+v", record)
	}
	if record.UserID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, record.UserID)
	}
	if record.Owner == nil || record.Owner.Email != "u@x.com" {
		t.Fatalf("expected embedded owner summary, got %+v", record.Owner)
	}
}

func TestAddressService_Create_NilInput(t *testing.T) {
	svc, users, _ := newAddressService(&fakeCepLookup{result: canonicalSe()})
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)

	if _, err := svc.Create(context.Background(), nil, owner.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddressService_Create_UnknownOwner(t *testing.T) {
	svc, _, repo := newAddressService(&fakeCepLookup{result: canonicalSe()})

	if _, err := svc.Create(context.Background(), sampleInput(), 99); !errors.Is(err, domain.ErrAddressAccessDenied) {
		t.Fatalf("expected ErrAddressAccessDenied for missing owner, got %v", err)
	}
	if len(repo.addresses) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestAddressService_Create_InvalidCep(t *testing.T) {
	cases := []struct {
		name   string
		lookup *fakeCepLookup
	}{
		{"not found flag", &fakeCepLookup{result: &ports.CepResult{Cep: "01001-000", NotFound: true}}},
		{"empty canonical code", &fakeCepLookup{result: &ports.CepResult{}}},
		{"nil result", &fakeCepLookup{}},
		{"transport error", &fakeCepLookup{err: errors.New("timeout")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, users, repo := newAddressService(tc.lookup)
			owner := seedUser(t, users, "u@x.com", domain.RoleUser)

			if _, err := svc.Create(context.Background(), sampleInput(), owner.ID); !errors.Is(err, domain.ErrInvalidCep) {
				t.Fatalf("expected ErrInvalidCep, got %v", err)
			}
			if len(repo.addresses) != 0 {
				t.Fatalf("expected nothing persisted")
			}
		})
	}
}

func TestAddressService_GetByID_NonAdminForeignAddress(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, _ := newAddressService(lookup)
	ownerU := seedUser(t, users, "u@x.com", domain.RoleUser)
	ownerV := seedUser(t, users, "v@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), ownerV.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	// Foreign and nonexistent ids must be indistinguishable to non-admins.
	if _, err := svc.GetByID(context.Background(), principalFor(ownerU), created.ID); !errors.Is(err, domain.ErrAddressAccessDenied) {
		t.Fatalf("expected ErrAddressAccessDenied for foreign address, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), principalFor(ownerU), 9999); !errors.Is(err, domain.ErrAddressAccessDenied) {
		t.Fatalf("expected ErrAddressAccessDenied for missing address, got %v", err)
	}
}

func TestAddressService_GetByID_Admin(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, _ := newAddressService(lookup)
	admin := seedUser(t, users, "admin@x.com", domain.RoleAdmin)
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), owner.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), principalFor(admin), created.ID); err != nil {
		t.Fatalf("expected admin to read any address, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), principalFor(admin), 9999); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound for admin on missing id, got %v", err)
	}
}

func TestAddressService_GetByID_Owner(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, _ := newAddressService(lookup)
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), owner.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	record, err := svc.GetByID(context.Background(), principalFor(owner), created.ID)
	if err != nil {
		t.Fatalf("expected owner to read own address, got %v", err)
	}
	if record.ID != created.ID {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestAddressService_Update_RederivesCanonicalFields(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, repo := newAddressService(lookup)
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), owner.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	// The registry moved the street; same zip code, new canonical data.
	lookup.result = &ports.CepResult{
		Cep:          "01001-000",
		Street:       "Praça da Sé Reformada",
		Neighborhood: "Sé",
		City:         "São Paulo",
		State:        "SP",
	}

	input := sampleInput()
	input.Number = "200"
	input.Type = domain.AddressCommercial

	updated, err := svc.Update(context.Background(), principalFor(owner), created.ID, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Street != "Praça da Sé Reformada" {
		t.Fatalf("expected re-derived street, got %s", updated.Street)
	}
	if updated.Number != "200" || updated.Type != domain.AddressCommercial {
		t.Fatalf("expected caller fields replaced, got %+v", updated)
	}
	if lookup.calls != 2 {
		t.Fatalf("expected lookup on every write, got %d calls", lookup.calls)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Street != "Praça da Sé Reformada" {
		t.Fatalf("expected persisted canonical street, got %s", stored.Street)
	}
}

func TestAddressService_Update_InvalidCepLeavesRecordUntouched(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, repo := newAddressService(lookup)
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), owner.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	lookup.result = &ports.CepResult{NotFound: true}

	input := sampleInput()
	input.Number = "999"
	if _, err := svc.Update(context.Background(), principalFor(owner), created.ID, input); !errors.Is(err, domain.ErrInvalidCep) {
		t.Fatalf("expected ErrInvalidCep, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Number != "100" {
		t.Fatalf("expected record unchanged after failed lookup, got number %s", stored.Number)
	}
}

func TestAddressService_Update_NonAdminForeignAddress(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, _ := newAddressService(lookup)
	ownerU := seedUser(t, users, "u@x.com", domain.RoleUser)
	ownerV := seedUser(t, users, "v@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), ownerV.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	if _, err := svc.Update(context.Background(), principalFor(ownerU), created.ID, sampleInput()); !errors.Is(err, domain.ErrAddressAccessDenied) {
		t.Fatalf("expected ErrAddressAccessDenied, got %v", err)
	}
}

func TestAddressService_Delete_OwnershipPolicy(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, repo := newAddressService(lookup)
	ownerU := seedUser(t, users, "u@x.com", domain.RoleUser)
	ownerV := seedUser(t, users, "v@x.com", domain.RoleUser)

	created, err := svc.Create(context.Background(), sampleInput(), ownerV.ID)
	if err != nil {
		t.Fatalf("seed address: %v", err)
	}

	if err := svc.Delete(context.Background(), principalFor(ownerU), created.ID); !errors.Is(err, domain.ErrAddressAccessDenied) {
		t.Fatalf("expected ErrAddressAccessDenied, got %v", err)
	}
	if err := svc.Delete(context.Background(), principalFor(ownerV), created.ID); err != nil {
		t.Fatalf("expected owner delete to succeed, got %v", err)
	}
	if len(repo.addresses) != 0 {
		t.Fatalf("expected address removed")
	}
}

func TestAddressService_ListByOwner(t *testing.T) {
	lookup := &fakeCepLookup{result: canonicalSe()}
	svc, users, _ := newAddressService(lookup)
	owner := seedUser(t, users, "u@x.com", domain.RoleUser)
	other := seedUser(t, users, "v@x.com", domain.RoleUser)

	if _, err := svc.Create(context.Background(), sampleInput(), owner.ID); err != nil {
		t.Fatalf("seed address: %v", err)
	}
	if _, err := svc.Create(context.Background(), sampleInput(), other.ID); err != nil {
		t.Fatalf("seed address: %v", err)
	}

	addresses, err := svc.ListByOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(addresses) != 1 || addresses[0].UserID != owner.ID {
		t.Fatalf("unexpected addresses: %+v", addresses)
	}
}
