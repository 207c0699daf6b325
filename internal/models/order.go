package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// OrderCustomer captures the checkout contact details snapshotted onto an order.
type OrderCustomer struct {
	Name                 string `bson:"name" json:"name"`
	Email                string `bson:"email" json:"email"`
	Phone                string `bson:"phone" json:"phone"`
	DeliveryInstructions string `bson:"deliveryInstructions,omitempty" json:"deliveryInstructions,omitempty"`
}

// OrderPricing is the priced breakdown frozen at placement time.
type OrderPricing struct {
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	Tax         float64 `bson:"tax" json:"tax"`
	DeliveryFee float64 `bson:"deliveryFee" json:"deliveryFee"`
	Fees        float64 `bson:"fees" json:"fees"`
	Total       float64 `bson:"total" json:"total"`
}

// Order is the persisted order document. Everything except Status and
// Tracking is immutable once written.
type Order struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderNumber           string               `bson:"orderNumber" json:"orderNumber"`
	AccountID             *primitive.ObjectID  `bson:"accountId,omitempty" json:"accountId,omitempty"`
	RestaurantID          *primitive.ObjectID  `bson:"restaurantId,omitempty" json:"restaurantId,omitempty"`
	Status                OrderStatus          `bson:"status" json:"status"`
	Items                 []CartItem           `bson:"items" json:"items"`
	Customer              OrderCustomer        `bson:"customer" json:"customer"`
	DeliveryAddress       DeliveryAddress      `bson:"deliveryAddress" json:"deliveryAddress"`
	Pricing               OrderPricing         `bson:"pricing" json:"pricing"`
	EstimatedDeliveryTime string               `bson:"estimatedDeliveryTime" json:"estimatedDeliveryTime"`
	Tracking              map[string]time.Time `bson:"tracking" json:"tracking"`
	CreatedAt             time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time            `bson:"updatedAt" json:"updatedAt"`
}
