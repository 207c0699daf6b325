package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sahil6458/MapleEats/internal/models"
)

type addressRequest struct {
	Label     string  `json:"label"`
	Address   string  `json:"address" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Pincode   string  `json:"pincode" binding:"required"`
	Phone     string  `json:"phone"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	IsDefault bool    `json:"isDefault"`
}

func GetAccountAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := c.Get("accountId")
		if !ok {
			log.Println("[ADDRESS] [ERROR] accountId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var account models.Account
		if err := db.Collection("accounts").FindOne(ctx, bson.M{"_id": accountID}).Decode(&account); err != nil {
			log.Println("[ADDRESS] [ERROR] get addresses failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": account.Addresses})
	}
}

func CreateAccountAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountIDValue, ok := c.Get("accountId")
		if !ok {
			log.Println("[ADDRESS] [ERROR] accountId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		accountID := accountIDValue.(primitive.ObjectID)

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[ADDRESS] [ERROR] invalid address body:", err)
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var account models.Account
		if err := db.Collection("accounts").FindOne(ctx, bson.M{"_id": accountID}).Decode(&account); err != nil {
			log.Println("[ADDRESS] [ERROR] account not found:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}

		if req.IsDefault {
			for i := range account.Addresses {
				account.Addresses[i].IsDefault = false
			}
		}

		address := models.DeliveryAddress{
			ID:        uuid.NewString(),
			Label:     strings.TrimSpace(req.Label),
			Address:   strings.TrimSpace(req.Address),
			City:      strings.TrimSpace(req.City),
			Pincode:   strings.TrimSpace(req.Pincode),
			Phone:     strings.TrimSpace(req.Phone),
			Lat:       req.Lat,
			Lng:       req.Lng,
			IsDefault: req.IsDefault,
		}

		account.Addresses = append(account.Addresses, address)
		account.UpdatedAt = time.Now()

		_, err := db.Collection("accounts").UpdateByID(ctx, accountID, bson.M{
			"$set": bson.M{
				"addresses": account.Addresses,
				"updatedAt": account.UpdatedAt,
			},
		})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] insert address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.ID)
		c.JSON(http.StatusCreated, gin.H{"address": address})
	}
}

func UpdateAccountAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountIDValue, ok := c.Get("accountId")
		if !ok {
			log.Println("[ADDRESS] [ERROR] accountId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		accountID := accountIDValue.(primitive.ObjectID)

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[ADDRESS] [ERROR] invalid address body:", err)
			respondValidationError(c, err)
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var account models.Account
		if err := db.Collection("accounts").FindOne(ctx, bson.M{"_id": accountID}).Decode(&account); err != nil {
			log.Println("[ADDRESS] [ERROR] account not found:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}

		index := -1
		for i, addr := range account.Addresses {
			if addr.ID == addressID {
				index = i
				break
			}
		}
		if index == -1 {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}

		if req.IsDefault {
			for i := range account.Addresses {
				account.Addresses[i].IsDefault = false
			}
		}

		account.Addresses[index].Label = strings.TrimSpace(req.Label)
		account.Addresses[index].Address = strings.TrimSpace(req.Address)
		account.Addresses[index].City = strings.TrimSpace(req.City)
		account.Addresses[index].Pincode = strings.TrimSpace(req.Pincode)
		account.Addresses[index].Phone = strings.TrimSpace(req.Phone)
		account.Addresses[index].Lat = req.Lat
		account.Addresses[index].Lng = req.Lng
		account.Addresses[index].IsDefault = req.IsDefault
		account.UpdatedAt = time.Now()

		_, err := db.Collection("accounts").UpdateByID(ctx, accountID, bson.M{
			"$set": bson.M{
				"addresses": account.Addresses,
				"updatedAt": account.UpdatedAt,
			},
		})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] update address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] address updated:", addressID)
		c.JSON(http.StatusOK, gin.H{"address": account.Addresses[index]})
	}
}

func DeleteAccountAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountIDValue, ok := c.Get("accountId")
		if !ok {
			log.Println("[ADDRESS] [ERROR] accountId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		accountID := accountIDValue.(primitive.ObjectID)

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var account models.Account
		if err := db.Collection("accounts").FindOne(ctx, bson.M{"_id": accountID}).Decode(&account); err != nil {
			log.Println("[ADDRESS] [ERROR] account not found:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}

		updated := make([]models.DeliveryAddress, 0, len(account.Addresses))
		found := false
		for _, addr := range account.Addresses {
			if addr.ID == addressID {
				found = true
				continue
			}
			updated = append(updated, addr)
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}

		account.UpdatedAt = time.Now()
		_, err := db.Collection("accounts").UpdateByID(ctx, accountID, bson.M{
			"$set": bson.M{
				"addresses": updated,
				"updatedAt": account.UpdatedAt,
			},
		})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] delete address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] address deleted:", addressID)
		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}
