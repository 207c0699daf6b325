package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sahil6458/MapleEats/internal/models"
)

func GetRestaurants(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restaurants"
		defer handlePanic(c, route)

		log.Printf("[%s] hit city=%s cuisine=%s", route, c.Query("city"), c.Query("cuisine"))

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{"isActive": bson.M{"$ne": false}}

		if city := strings.TrimSpace(c.Query("city")); city != "" {
			filter["city"] = bson.M{"$regex": "^" + city + "$", "$options": "i"}
		}

		if cuisine := strings.TrimSpace(c.Query("cuisine")); cuisine != "" {
			filter["cuisineType"] = bson.M{"$regex": cuisine, "$options": "i"}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("restaurants").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "rating", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var restaurants []models.Restaurant
		if err := cursor.All(ctx, &restaurants); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d restaurants", route, len(restaurants))
		c.JSON(http.StatusOK, restaurants)
	}
}

func GetRestaurant(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /restaurants/:id"
		defer handlePanic(c, route)

		restaurantID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid restaurant id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var restaurant models.Restaurant
		if err := db.Collection("restaurants").FindOne(ctx, bson.M{
			"_id":      restaurantID,
			"isActive": bson.M{"$ne": false},
		}).Decode(&restaurant); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "restaurant not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, restaurant)
	}
}
