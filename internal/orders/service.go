package orders

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sahil6458/MapleEats/internal/models"
)

type ErrInvalidTransition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

type ErrOrderNotFound struct {
	OrderID primitive.ObjectID
}

func (e ErrOrderNotFound) Error() string {
	return "order not found"
}

// Draft carries everything assembled at checkout completion; the service
// fills in the order number, status, tracking, and timestamps.
type Draft struct {
	AccountID             *primitive.ObjectID
	RestaurantID          *primitive.ObjectID
	Items                 []models.CartItem
	Customer              models.OrderCustomer
	DeliveryAddress       models.DeliveryAddress
	Pricing               models.OrderPricing
	EstimatedDeliveryTime string
}

type Service struct {
	db *mongo.Database
}

func NewService(db *mongo.Database) *Service {
	return &Service{db: db}
}

func (s *Service) collection() *mongo.Collection {
	return s.db.Collection("orders")
}

// GenerateOrderNumber builds the customer-facing number: "ME" + the last six
// digits of unix millis + three random digits.
func GenerateOrderNumber() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("ME%s%03d", millis, suffix)
}

// Create inserts the order snapshot as pending with its placement timestamp
// tracked. Everything except status and tracking is immutable afterwards.
func (s *Service) Create(ctx context.Context, draft Draft) (*models.Order, error) {
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	order := models.Order{
		OrderNumber:           GenerateOrderNumber(),
		AccountID:             draft.AccountID,
		RestaurantID:          draft.RestaurantID,
		Status:                models.StatusPending,
		Items:                 draft.Items,
		Customer:              draft.Customer,
		DeliveryAddress:       draft.DeliveryAddress,
		Pricing:               draft.Pricing,
		EstimatedDeliveryTime: draft.EstimatedDeliveryTime,
		Tracking:              map[string]time.Time{TrackingKey(models.StatusPending): now},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	res, err := s.collection().InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return &order, nil
}

// ListByAccount returns an account's orders, newest first. With pendingOnly
// set, delivered and cancelled orders are filtered out.
func (s *Service) ListByAccount(ctx context.Context, accountID primitive.ObjectID, pendingOnly bool) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"accountId": accountID}
	if pendingOnly {
		filter["status"] = bson.M{"$nin": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled}}
	}

	cursor, err := s.collection().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetByID(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order models.Order
	err := s.collection().FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound{OrderID: orderID}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus applies a partner-reported transition, stamping the matching
// tracking key on receipt. Invalid transitions are rejected, not coerced.
func (s *Service) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, status) {
		return nil, ErrInvalidTransition{From: order.Status, To: status}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":                          status,
			"updatedAt":                       now,
			"tracking." + TrackingKey(status): now,
		},
	}

	var updated models.Order
	err = s.collection().FindOneAndUpdate(
		ctx,
		bson.M{"_id": orderID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound{OrderID: orderID}
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
