package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant is a storefront listing with the delivery metadata the discovery
// screen sorts and filters on.
type Restaurant struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	CuisineType   string             `bson:"cuisineType,omitempty" json:"cuisineType,omitempty"`
	ImagePath     string             `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	Rating        float64            `bson:"rating" json:"rating"`
	TotalRatings  int                `bson:"totalRatings" json:"totalRatings"`
	DeliveryTime  int                `bson:"deliveryTime" json:"deliveryTime"` // minutes
	MinimumOrder  float64            `bson:"minimumOrder" json:"minimumOrder"`
	City          string             `bson:"city" json:"city"`
	Pincode       string             `bson:"pincode" json:"pincode"`
	ContactPhone  string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	OpeningTime   string             `bson:"openingTime,omitempty" json:"openingTime,omitempty"`
	ClosingTime   string             `bson:"closingTime,omitempty" json:"closingTime,omitempty"`
	IsOpen        bool               `bson:"isOpen" json:"isOpen"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
