package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a menu item served by a restaurant. Price is the base price;
// customization adjustments are resolved per cart line, not stored here.
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID     primitive.ObjectID `bson:"restaurantId,omitempty" json:"restaurantId,omitempty"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	Category         StringList         `bson:"category" json:"category"`
	Tags             StringList         `bson:"tags,omitempty" json:"tags,omitempty"`
	ImagePath        string             `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	HasCustomization bool               `bson:"hasCustomization" json:"hasCustomization"`
	Available        bool               `bson:"available" json:"available"`
	Featured         bool               `bson:"isFeatured" json:"isFeatured"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	IsDeleted        bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt        *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
