package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sahil6458/MapleEats/internal/cart"
)

/*
POST /cart/calculate
- prices an arbitrary subtotal + address pair
- mirrors the provider envelope so clients never branch on which path ran
*/
func CalculateCart(calculator *cart.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/calculate"
		defer handlePanic(c, route)

		var req cart.CalculationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		result := calculator.Calculate(c.Request.Context(), req)
		if result == nil {
			// nothing to price for an empty cart
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
			return
		}

		log.Printf("[%s] subtotal=%.2f total=%.2f", route, result.Subtotal, result.Total)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}
