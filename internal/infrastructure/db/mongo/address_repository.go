package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

const addressesCollection = "addresses"

const addressesSequence = "addresses"

type AddressRepository struct {
	coll     *mongo.Collection
	counters *Counters
}

func NewAddressRepository(db *mongo.Database, counters *Counters) *AddressRepository {
	return &AddressRepository{coll: db.Collection(addressesCollection), counters: counters}
}

type mongoAddress struct {
	ID           int64     `bson:"_id"`
	Street       string    `bson:"street"`
	Number       string    `bson:"number"`
	Complement   string    `bson:"complement,omitempty"`
	Neighborhood string    `bson:"neighborhood"`
	City         string    `bson:"city"`
	State        string    `bson:"state"`
	ZipCode      string    `bson:"zip_code"`
	Type         string    `bson:"type"`
	UserID       int64     `bson:"user_id"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toMongoAddress(a *domain.Address) mongoAddress {
	return mongoAddress{
		ID:           a.ID,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
		Type:         string(a.Type),
		UserID:       a.UserID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (ma mongoAddress) toDomain() *domain.Address {
	return &domain.Address{
		ID:           ma.ID,
		Street:       ma.Street,
		Number:       ma.Number,
		Complement:   ma.Complement,
		Neighborhood: ma.Neighborhood,
		City:         ma.City,
		State:        ma.State,
		ZipCode:      ma.ZipCode,
		Type:         domain.AddressType(ma.Type),
		UserID:       ma.UserID,
		CreatedAt:    ma.CreatedAt.UTC(),
		UpdatedAt:    ma.UpdatedAt.UTC(),
	}
}

func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, addressesSequence)
	if err != nil {
		return nil, err
	}

	doc := toMongoAddress(address)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*domain.Address, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AddressRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Address, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": ownerID})
}

func (r *AddressRepository) findOne(ctx context.Context, filter bson.M) (*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAddress
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AddressRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("find addresses by owner: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeAddresses(ctx, cursor)
}

func (r *AddressRepository) Update(ctx context.Context, address *domain.Address) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": address.ID}, toMongoAddress(address))
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": ownerID}); err != nil {
		return fmt.Errorf("delete addresses by owner: %w", err)
	}
	return nil
}

var addressSortFields = map[string]string{
	"street":     "street",
	"city":       "city",
	"state":      "state",
	"zip_code":   "zip_code",
	"created_at": "created_at",
}

func (r *AddressRepository) List(ctx context.Context, filter ports.PageFilter) ([]*domain.Address, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count addresses: %w", err)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, pageOptions(filter, addressSortFields, "street"))
	if err != nil {
		return nil, 0, fmt.Errorf("list addresses: %w", err)
	}
	defer cursor.Close(ctx)

	addresses, err := decodeAddresses(ctx, cursor)
	return addresses, total, err
}

func decodeAddresses(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Address, error) {
	var addresses []*domain.Address
	for cursor.Next(ctx) {
		var ma mongoAddress
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		addresses = append(addresses, ma.toDomain())
	}
	return addresses, cursor.Err()
}

// EnsureIndexes creates the owner lookup index.
func (r *AddressRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "zip_code", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
