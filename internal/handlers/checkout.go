package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sahil6458/MapleEats/internal/cart"
	"github.com/Sahil6458/MapleEats/internal/checkout"
	"github.com/Sahil6458/MapleEats/internal/models"
	"github.com/Sahil6458/MapleEats/internal/orders"
	"github.com/Sahil6458/MapleEats/internal/session"
)

type addItemRequest struct {
	ProductID     string                       `json:"productId" binding:"required"`
	Quantity      int                          `json:"quantity" binding:"required"`
	Customization *models.ProductCustomization `json:"customization"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type stepRequest struct {
	Step string `json:"step" binding:"required"`
}

type verifyOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

type placeOrderRequest struct {
	RestaurantID string `json:"restaurantId"`
}

func sessionState(s *session.Session) gin.H {
	return gin.H{
		"sessionId": s.ID,
		"checkout":  s.Checkout.Snapshot(),
		"cart": gin.H{
			"items":      s.Cart.Items(),
			"totalItems": s.Cart.TotalItems(),
			"subtotal":   s.Cart.Subtotal(),
		},
	}
}

func sessionFromPath(c *gin.Context, registry *session.Registry, route string) *session.Session {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondWithError(c, http.StatusBadRequest, route, "invalid session id")
		return nil
	}

	s := registry.Get(id)
	if s == nil {
		respondWithError(c, http.StatusNotFound, route, "session not found")
		return nil
	}
	return s
}

func CreateCheckoutSession(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions"
		defer handlePanic(c, route)

		s := registry.Start()
		log.Printf("[%s] session created: %s", route, s.ID)
		c.JSON(http.StatusCreated, sessionState(s))
	}
}

func GetCheckoutSession(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /checkout/sessions/:id"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}
		c.JSON(http.StatusOK, sessionState(s))
	}
}

func EndCheckoutSession(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /checkout/sessions/:id"
		defer handlePanic(c, route)

		registry.End(strings.TrimSpace(c.Param("id")))
		c.JSON(http.StatusOK, gin.H{"message": "session ended"})
	}
}

/*
POST /checkout/sessions/:id/items
- every add creates a new cart line, even for a repeated product
- customized items are priced against the product's option catalog
*/
func AddCartItem(registry *session.Registry, db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/items"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Quantity < 1 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be at least 1")
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var raw bson.M
		if err := db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&raw); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}
		if !product.Available {
			respondWithError(c, http.StatusConflict, route, "product is unavailable")
			return
		}

		var catalog []models.CustomizationOption
		if req.Customization != nil {
			catalog, err = loadCustomizationOptions(ctx, db, productID)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if !req.Customization.ValidSelections(catalog) {
				respondWithError(c, http.StatusBadRequest, route, "required selections are missing")
				return
			}
		}

		item := s.Cart.AddItem(product, req.Quantity, req.Customization, catalog)

		log.Printf("[%s] item added: %s x%d", route, item.Name, item.Quantity)
		c.JSON(http.StatusCreated, gin.H{"item": item, "cart": gin.H{
			"items":      s.Cart.Items(),
			"totalItems": s.Cart.TotalItems(),
			"subtotal":   s.Cart.Subtotal(),
		}})
	}
}

/*
PUT /checkout/sessions/:id/items/:itemId
- quantities below 1 are refused; removal is a separate call
*/
func UpdateCartItem(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /checkout/sessions/:id/items/:itemId"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Quantity < 1 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be at least 1")
			return
		}

		if !s.Cart.UpdateQuantity(strings.TrimSpace(c.Param("itemId")), req.Quantity) {
			respondWithError(c, http.StatusNotFound, route, "cart item not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": gin.H{
			"items":      s.Cart.Items(),
			"totalItems": s.Cart.TotalItems(),
			"subtotal":   s.Cart.Subtotal(),
		}})
	}
}

func RemoveCartItem(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /checkout/sessions/:id/items/:itemId"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		if !s.Cart.RemoveItem(strings.TrimSpace(c.Param("itemId"))) {
			respondWithError(c, http.StatusNotFound, route, "cart item not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": gin.H{
			"items":      s.Cart.Items(),
			"totalItems": s.Cart.TotalItems(),
			"subtotal":   s.Cart.Subtotal(),
		}})
	}
}

func SetCheckoutAddress(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/address"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		var address models.DeliveryAddress
		if err := c.ShouldBindJSON(&address); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if strings.TrimSpace(address.Address) == "" || strings.TrimSpace(address.City) == "" {
			respondWithError(c, http.StatusBadRequest, route, "address and city are required")
			return
		}

		s.Checkout.SetAddress(address)
		c.JSON(http.StatusOK, sessionState(s))
	}
}

func RequestCheckoutAddressChange(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/address/change"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		err := s.Checkout.RequestAddressChange()
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "checkout": s.Checkout.Snapshot()})
	}
}

func UpdateCheckoutDetails(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/details"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		var details checkout.CustomerDetails
		if err := c.ShouldBindJSON(&details); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		if err := s.Checkout.UpdateDetails(details); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "checkout": s.Checkout.Snapshot()})
			return
		}

		c.JSON(http.StatusOK, sessionState(s))
	}
}

func GoToCheckoutStep(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/step"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		var req stepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := s.Checkout.GoToStep(checkout.Step(req.Step)); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "step not reachable", "checkout": s.Checkout.Snapshot()})
			return
		}

		c.JSON(http.StatusOK, sessionState(s))
	}
}

/*
POST /checkout/sessions/:id/send-otp
- a provider outage is not a failure here: the flow degrades to the fixed
  test code and checkout continues
*/
func SendCheckoutOTP(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/send-otp"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		err := s.Checkout.SendOTP(c.Request.Context())
		switch {
		case err == nil:
			c.JSON(http.StatusOK, sessionState(s))
		case errors.Is(err, checkout.ErrBusy):
			respondWithError(c, http.StatusConflict, route, "verification already in progress")
		case errors.Is(err, checkout.ErrStepBlocked):
			respondWithError(c, http.StatusConflict, route, "cannot send a code from this step")
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send verification code", "checkout": s.Checkout.Snapshot()})
		}
	}
}

/*
POST /checkout/sessions/:id/verify-otp
- successful verification materializes the account and issues tokens
*/
func VerifyCheckoutOTP(registry *session.Registry, db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/verify-otp"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		var req verifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		err := s.Checkout.VerifyOTP(c.Request.Context(), req.Code)
		switch {
		case err == nil:
			// verified, fall through to token issuance
		case errors.Is(err, checkout.ErrBusy):
			respondWithError(c, http.StatusConflict, route, "verification already in progress")
			return
		case errors.Is(err, checkout.ErrStepBlocked):
			respondWithError(c, http.StatusConflict, route, "no verification code outstanding")
			return
		case errors.Is(err, checkout.ErrProviderUnavailable):
			// outage mid-verify: fallback mode is now active, client retries
			c.JSON(http.StatusOK, sessionState(s))
			return
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification code", "checkout": s.Checkout.Snapshot()})
			return
		}

		account := s.Checkout.Account()
		if account == nil {
			respondWithError(c, http.StatusInternalServerError, route, "account resolution failed")
			return
		}

		tokens, err := issueAccountTokens(c, db, account, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			log.Println("[CHECKOUT] [ERROR] token issuance failed:", err)
			return
		}

		log.Println("[CHECKOUT] [INFO] phone verified:", account.Phone)
		c.JSON(http.StatusOK, gin.H{
			"checkout":     s.Checkout.Snapshot(),
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresIn":    tokens.ExpiresIn,
			"account": gin.H{
				"id":    account.ID.Hex(),
				"phone": account.Phone,
				"name":  account.Name,
				"email": account.Email,
			},
		})
	}
}

/*
POST /checkout/sessions/:id/place-order
- prices the cart, snapshots everything into an order, and clears the cart
- a placement failure leaves the flow on the payment step for retry
*/
func PlaceCheckoutOrder(registry *session.Registry, svc *orders.Service, calculator *cart.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/sessions/:id/place-order"
		defer handlePanic(c, route)

		s := sessionFromPath(c, registry, route)
		if s == nil {
			return
		}

		// body is optional; an empty request places the order as-is
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		items := s.Cart.Items()
		if len(items) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		snapshot := s.Checkout.Snapshot()
		if snapshot.Address == nil {
			respondWithError(c, http.StatusConflict, route, "delivery address is required")
			return
		}

		calcReq := cart.CalculationRequest{
			Subtotal:     s.Cart.Subtotal(),
			RestaurantID: req.RestaurantID,
			DeliveryAddress: &cart.CalculationAddress{
				Street:  snapshot.Address.Address,
				City:    snapshot.Address.City,
				ZipCode: snapshot.Address.Pincode,
				Lat:     snapshot.Address.Lat,
				Lng:     snapshot.Address.Lng,
			},
		}
		calculation := calculator.Calculate(c.Request.Context(), calcReq)
		if calculation == nil {
			respondWithError(c, http.StatusBadRequest, route, "nothing to price")
			return
		}

		draft := orders.Draft{
			Items: items,
			Customer: models.OrderCustomer{
				Name:                 snapshot.Details.Name,
				Email:                snapshot.Details.Email,
				Phone:                snapshot.Details.Phone,
				DeliveryInstructions: snapshot.Details.DeliveryInstructions,
			},
			DeliveryAddress: *snapshot.Address,
			Pricing: models.OrderPricing{
				Subtotal:    calculation.Subtotal,
				Tax:         calculation.Tax.Amount,
				DeliveryFee: calculation.DeliveryFee.Amount,
				Fees:        calculation.Fees.PlatformFee + calculation.Fees.SmallOrderFee,
				Total:       calculation.Total,
			},
			EstimatedDeliveryTime: calculation.EstimatedDeliveryTime,
		}

		if account := s.Checkout.Account(); account != nil {
			accountID := account.ID
			draft.AccountID = &accountID
		}
		if restaurant := strings.TrimSpace(req.RestaurantID); restaurant != "" {
			restaurantID, err := primitive.ObjectIDFromHex(restaurant)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid restaurantId")
				return
			}
			draft.RestaurantID = &restaurantID
		}

		var created *models.Order
		err := s.Checkout.PlaceOrder(c.Request.Context(), func(ctx context.Context) error {
			order, placeErr := svc.Create(ctx, draft)
			if placeErr != nil {
				return placeErr
			}
			created = order
			return nil
		})
		switch {
		case err == nil:
			// placed, fall through
		case errors.Is(err, checkout.ErrBusy):
			respondWithError(c, http.StatusConflict, route, "order placement already in progress")
			return
		case errors.Is(err, checkout.ErrStepBlocked):
			respondWithError(c, http.StatusConflict, route, "checkout is not at the payment step")
			return
		default:
			log.Println("[CHECKOUT] [ERROR] order placement failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order", "checkout": s.Checkout.Snapshot()})
			return
		}

		s.Cart.Clear()

		log.Printf("[%s] order placed: %s", route, created.OrderNumber)
		c.JSON(http.StatusCreated, gin.H{
			"order":    created,
			"checkout": s.Checkout.Snapshot(),
		})
	}
}
