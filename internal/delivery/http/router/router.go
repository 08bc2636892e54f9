// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tally/internal/delivery/http/middleware"
	"tally/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler        *handler.UserHandler
	CalculationHandler *handler.CalculationHandler
	ArithmeticHandler  *handler.ArithmeticHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler        *handler.UserHandler
	calculationHandler *handler.CalculationHandler
	arithmeticHandler  *handler.ArithmeticHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:        params.UserHandler,
		calculationHandler: params.CalculationHandler,
		arithmeticHandler:  params.ArithmeticHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Standalone arithmetic endpoints, stateless and unauthenticated
	e.POST("/add", r.arithmeticHandler.Add)
	e.POST("/subtract", r.arithmeticHandler.Subtract)
	e.POST("/multiply", r.arithmeticHandler.Multiply)
	e.POST("/divide", r.arithmeticHandler.Divide)

	// Account routes
	userGroup := e.Group("/users")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)
		userGroup.DELETE("/me", r.userHandler.DeleteMe, r.authMiddleware.Authenticate)
	}

	// Calculation routes, all behind JWT authentication
	calcGroup := e.Group("/calculations")
	calcGroup.Use(r.authMiddleware.Authenticate)
	{
		calcGroup.POST("", r.calculationHandler.Create)
		calcGroup.GET("", r.calculationHandler.List)
		calcGroup.GET("/:id", r.calculationHandler.Get)
		calcGroup.PUT("/:id", r.calculationHandler.Update)
		calcGroup.DELETE("/:id", r.calculationHandler.Delete)
	}
}
