package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryAddress is a saved or checkout-entered delivery location. Geocoding
// happens upstream; lat/lng arrive as opaque values when present.
type DeliveryAddress struct {
	ID        string  `bson:"id,omitempty" json:"id,omitempty"`
	Label     string  `bson:"label,omitempty" json:"label,omitempty"`
	Address   string  `bson:"address" json:"address"`
	City      string  `bson:"city" json:"city"`
	Pincode   string  `bson:"pincode" json:"pincode"`
	Phone     string  `bson:"phone,omitempty" json:"phone,omitempty"`
	Lat       float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng       float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	IsDefault bool    `bson:"isDefault" json:"isDefault"`
}

// Account is a customer identity keyed by phone number. It is created only
// after the first successful OTP verification.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Phone     string             `bson:"phone" json:"phone"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Addresses []DeliveryAddress  `bson:"addresses" json:"addresses"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
