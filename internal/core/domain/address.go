package domain

import (
	"errors"
	"time"
)

// AddressType enumerates the supported address categories.
type AddressType string

const (
	AddressResidential AddressType = "RESIDENTIAL"
	AddressCommercial  AddressType = "COMMERCIAL"
)

var ErrAddressNotFound = errors.New("address not found")
var ErrAddressAccessDenied = errors.New("address not found or access denied")
var ErrInvalidCep = errors.New("invalid or unknown postal code")

// ValidAddressType reports whether t is one of the known address types.
func ValidAddressType(t AddressType) bool {
	return t == AddressResidential || t == AddressCommercial
}

// Address is the persisted address record. Street, neighborhood, city and
// state always hold the last values returned by the postal lookup for
// ZipCode; number, complement and type are caller-supplied. UserID is set at
// creation and never changes.
type Address struct {
	ID           int64       `json:"id" bson:"_id"`
	Street       string      `json:"street" bson:"street"`
	Number       string      `json:"number" bson:"number"`
	Complement   string      `json:"complement,omitempty" bson:"complement,omitempty"`
	Neighborhood string      `json:"neighborhood" bson:"neighborhood"`
	City         string      `json:"city" bson:"city"`
	State        string      `json:"state" bson:"state"`
	ZipCode      string      `json:"zip_code" bson:"zip_code"`
	Type         AddressType `json:"type" bson:"type"`
	UserID       int64       `json:"user_id" bson:"user_id"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}
