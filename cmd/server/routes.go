package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"booked-barber.backend/internal/interfaces/http/handlers"
	"booked-barber.backend/internal/interfaces/http/middleware"
	"booked-barber.backend/pkg/jwt"
)

type routeDeps struct {
	paymentHandler    *handlers.PaymentHandler
	feeHandler        *handlers.FeeHandler
	configHandler     *handlers.PaymentConfigHandler
	processorHandler  *handlers.ProcessorHandler
	collectionHandler *handlers.CollectionHandler
	jwtService        *jwt.JWTService
}

func setupRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAPIV1Routes(r, d)
	return r
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	auth := middleware.AuthMiddleware(d.jwtService)

	v1 := r.Group("/api/v1")
	{
		// Fee quotes (public: booking UIs show fees before login)
		fees := v1.Group("/fees")
		{
			fees.POST("/quote", d.feeHandler.QuoteFee)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(auth)
		{
			payments.POST("/charge", middleware.IdempotencyMiddleware(), d.paymentHandler.CreateCharge)
			payments.GET("/transactions", d.paymentHandler.ListTransactions)
			payments.GET("/transactions/:id", d.paymentHandler.GetTransaction)
		}

		// Payment config routes (protected)
		paymentConfig := v1.Group("/payment-config")
		paymentConfig.Use(auth)
		{
			paymentConfig.GET("", d.configHandler.GetConfig)
			paymentConfig.PUT("", d.configHandler.UpdateConfig)
			paymentConfig.GET("/history", d.configHandler.GetHistory)
		}

		// Processor connection routes (protected)
		processors := v1.Group("/processors")
		processors.Use(auth)
		{
			processors.POST("/connect", d.processorHandler.Connect)
			processors.GET("", d.processorHandler.List)
			processors.GET("/health", d.processorHandler.Health)
			processors.DELETE("/:id", d.processorHandler.Disconnect)
		}

		// Collection routes (protected)
		collections := v1.Group("/collections")
		collections.Use(auth)
		{
			collections.GET("", d.collectionHandler.ListCollections)
			collections.GET("/:id", d.collectionHandler.GetCollection)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(auth, middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.POST("/collections/run", d.collectionHandler.RunCycle)
			admin.GET("/fee-configs", d.feeHandler.ListFeeConfigs)
			admin.POST("/fee-configs", d.feeHandler.CreateFeeConfig)
		}
	}
}
