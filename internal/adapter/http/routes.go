package http

import (
	"github.com/labstack/echo/v4"

	"loan-management-system/internal/adapter/middleware"
	"loan-management-system/internal/domain/user"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Health    *Handler
	Auth      *AuthHandler
	Customers *CustomerHandler
	Loans     *LoanHandler
}

// RegisterRoutes mounts the public API. mws run on every /api route, in
// order; authentication must come before idempotency.
func RegisterRoutes(e *echo.Echo, h Handlers, mws ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api", mws...)
	admin := middleware.RequireRole(user.RoleAdmin)
	customer := middleware.RequireRole(user.RoleCustomer)

	api.POST("/auth/login", h.Auth.Login)

	api.POST("/customers/register", h.Customers.Register)
	api.GET("/customers", h.Customers.List, admin)

	loans := api.Group("/loans")
	loans.POST("/apply", h.Loans.Apply, customer)
	loans.GET("/my-loans", h.Loans.MyLoans, customer)
	loans.GET("", h.Loans.ListAll, admin)
	loans.GET("/stats", h.Loans.Stats, admin)
	loans.GET("/:loan_id", h.Loans.GetLoan, admin)
	loans.PUT("/:loan_id/status", h.Loans.Decide, admin)
}
