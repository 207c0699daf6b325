package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Sahil6458/MapleEats/internal/accounts"
	"github.com/Sahil6458/MapleEats/internal/cart"
	"github.com/Sahil6458/MapleEats/internal/checkout"
	"github.com/Sahil6458/MapleEats/internal/config"
	"github.com/Sahil6458/MapleEats/internal/database"
	"github.com/Sahil6458/MapleEats/internal/handlers"
	"github.com/Sahil6458/MapleEats/internal/middleware"
	"github.com/Sahil6458/MapleEats/internal/orders"
	"github.com/Sahil6458/MapleEats/internal/session"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureCustomizationIndexes(db); err != nil {
		log.Printf("customization index warning: %v", err)
	}
	if err := database.EnsureAccountIndexes(db); err != nil {
		log.Printf("account index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureRefreshTokenIndexes(db); err != nil {
		log.Printf("refresh token index warning: %v", err)
	}

	calculator := cart.NewCalculator(config.AppEnv.PricingAPIBaseURL, config.AppEnv.ProviderTimeout)
	otpClient := checkout.NewOTPClient(config.AppEnv.OTPAPIBaseURL, config.AppEnv.ProviderTimeout)
	resolver := accounts.NewResolver(accounts.NewMongoStore(db), otpClient)
	orderService := orders.NewService(db)
	registry := session.NewRegistry(resolver, otpClient)

	r := gin.Default()

	r.GET("/restaurants", handlers.GetRestaurants(db))
	r.GET("/restaurants/:id", handlers.GetRestaurant(db))
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/featured", handlers.GetFeaturedProducts(db))
	r.GET("/products/:id/customizations", handlers.GetProductCustomizations(db))
	r.GET("/categories", handlers.GetCategories(db))

	r.POST("/cart/calculate", handlers.CalculateCart(calculator))

	sessions := r.Group("/checkout/sessions")
	{
		sessions.POST("", handlers.CreateCheckoutSession(registry))
		sessions.GET("/:id", handlers.GetCheckoutSession(registry))
		sessions.DELETE("/:id", handlers.EndCheckoutSession(registry))

		sessions.POST("/:id/items", handlers.AddCartItem(registry, db))
		sessions.PUT("/:id/items/:itemId", handlers.UpdateCartItem(registry))
		sessions.DELETE("/:id/items/:itemId", handlers.RemoveCartItem(registry))

		sessions.POST("/:id/address", handlers.SetCheckoutAddress(registry))
		sessions.POST("/:id/address/change", handlers.RequestCheckoutAddressChange(registry))
		sessions.POST("/:id/details", handlers.UpdateCheckoutDetails(registry))
		sessions.POST("/:id/step", handlers.GoToCheckoutStep(registry))
		sessions.POST("/:id/send-otp", handlers.SendCheckoutOTP(registry))
		sessions.POST("/:id/verify-otp", handlers.VerifyCheckoutOTP(
			registry,
			db,
			config.AppEnv.JWTSecret,
			config.AppEnv.AccessTokenTTL,
			config.AppEnv.RefreshTokenTTL,
		))
		sessions.POST("/:id/place-order", handlers.PlaceCheckoutOrder(registry, orderService, calculator))
	}

	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.AccountAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	account := r.Group("/account")
	account.Use(middleware.AccountAuth(config.AppEnv.JWTSecret))
	{
		account.GET("/addresses", handlers.GetAccountAddresses(db))
		account.POST("/addresses", handlers.CreateAccountAddress(db))
		account.PUT("/addresses/:id", handlers.UpdateAccountAddress(db))
		account.DELETE("/addresses/:id", handlers.DeleteAccountAddress(db))
	}

	r.GET("/orders", middleware.AccountAuth(config.AppEnv.JWTSecret), handlers.GetOrders(orderService))
	r.GET("/orders/:id", middleware.AccountAuth(config.AppEnv.JWTSecret), handlers.GetOrder(orderService))

	partner := r.Group("/partner")
	partner.Use(middleware.PartnerAuth(config.AppEnv.PartnerAPIKey))
	{
		partner.POST("/orders/:id/status", handlers.UpdateOrderStatus(orderService))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
