package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahil6458/MapleEats/internal/models"
	"github.com/Sahil6458/MapleEats/internal/orders"
)

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

/*
GET /orders
- the authenticated account's order history, newest first
- ?pending=true filters out delivered and cancelled orders
*/
func GetOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		accountIDValue, ok := c.Get("accountId")
		if !ok {
			log.Println("[ORDER] [ERROR] accountId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		accountID, ok := accountIDValue.(primitive.ObjectID)
		if !ok {
			log.Println("[ORDER] [ERROR] accountId context value malformed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		pendingOnly := strings.EqualFold(c.Query("pending"), "true")

		list, err := svc.ListByAccount(c.Request.Context(), accountID, pendingOnly)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d orders", route, len(list))
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		accountIDValue, ok := c.Get("accountId")
		if !ok {
			log.Println("[ORDER] [ERROR] accountId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		accountID, ok := accountIDValue.(primitive.ObjectID)
		if !ok {
			log.Println("[ORDER] [ERROR] accountId context value malformed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		order, err := svc.GetByID(c.Request.Context(), orderID)
		if err != nil {
			var notFound orders.ErrOrderNotFound
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.AccountID == nil || *order.AccountID != accountID {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/*
POST /partner/orders/:id/status
- restaurant-side status intake; one step forward along the chain, or a
  cancellation of any non-terminal order
*/
func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /partner/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status := models.OrderStatus(strings.TrimSpace(req.Status))
		if orders.TrackingKey(status) == "" {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		updated, err := svc.UpdateStatus(c.Request.Context(), orderID, status)
		if err != nil {
			var invalid orders.ErrInvalidTransition
			if errors.As(err, &invalid) {
				respondWithError(c, http.StatusConflict, route, invalid.Error())
				return
			}
			var notFound orders.ErrOrderNotFound
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order %s moved to %s", route, updated.OrderNumber, updated.Status)
		c.JSON(http.StatusOK, updated)
	}
}
