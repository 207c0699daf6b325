package models

// CartItem is one cart line. Price already includes customization adjustments;
// TotalPrice must always equal Price * Quantity.
type CartItem struct {
	ID            string                `bson:"id" json:"id"`
	ProductID     string                `bson:"productId" json:"productId"`
	Name          string                `bson:"name" json:"name"`
	Price         float64               `bson:"price" json:"price"`
	Quantity      int                   `bson:"quantity" json:"quantity"`
	Customization *ProductCustomization `bson:"customization,omitempty" json:"customization,omitempty"`
	TotalPrice    float64               `bson:"totalPrice" json:"totalPrice"`
}
