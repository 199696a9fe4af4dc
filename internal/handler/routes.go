package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authLimiter *middleware.RateLimiter, authHandler *AuthHandler, categoryHandler *CategoryHandler, transactionHandler *TransactionHandler, reportHandler *ReportHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (credential endpoints are rate limited)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, authLimiter.Middleware())
	auth.POST("/login", authHandler.Login, authLimiter.Middleware())
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate())

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Report routes (protected)
	reports := api.Group("/reports")
	reports.Use(authMiddleware.Authenticate())
	reports.GET("/balance", reportHandler.GetBalance)

	// WebSocket endpoint (token validated in the handler)
	e.GET("/ws", wsHandler.HandleWS)
}
