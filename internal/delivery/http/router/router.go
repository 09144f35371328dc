// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"homecafe/internal/delivery/http/router/handler"
	"homecafe/internal/delivery/ws"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MenuHandler    *handler.MenuHandler
	AdminHandler   *handler.AdminHandler
	SessionHandler *handler.SessionHandler
	QueueHandler   *handler.QueueHandler
	WSHandler      *ws.Handler
}

// router holds all the handlers that need to be registered.
type router struct {
	menuHandler    *handler.MenuHandler
	adminHandler   *handler.AdminHandler
	sessionHandler *handler.SessionHandler
	queueHandler   *handler.QueueHandler
	wsHandler      *ws.Handler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		menuHandler:    params.MenuHandler,
		adminHandler:   params.AdminHandler,
		sessionHandler: params.SessionHandler,
		queueHandler:   params.QueueHandler,
		wsHandler:      params.WSHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Guest-facing menu
	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/menu", r.menuHandler.GetMenu)
		apiGroup.GET("/qr", r.menuHandler.GetMenuQR)
	}

	// Operator catalog management
	adminGroup := apiGroup.Group("/admin")
	{
		adminGroup.POST("/items", r.adminHandler.CreateItem)
		adminGroup.PATCH("/items/:id", r.adminHandler.UpdateItem)
		adminGroup.DELETE("/items/:id", r.adminHandler.DeleteItem)
		adminGroup.POST("/items/reorder", r.adminHandler.ReorderItems)
		adminGroup.PUT("/config", r.adminHandler.UpdateConfig)
	}

	// Guest ordering dialog
	sessionGroup := apiGroup.Group("/session")
	{
		sessionGroup.POST("/draft", r.sessionHandler.OpenDraft)
		sessionGroup.GET("/:id", r.sessionHandler.GetDraft)
		sessionGroup.PATCH("/:id/draft", r.sessionHandler.SetField)
		sessionGroup.POST("/:id/advance", r.sessionHandler.Advance)
		sessionGroup.POST("/:id/back", r.sessionHandler.Back)
		sessionGroup.DELETE("/:id", r.sessionHandler.Cancel)
	}

	// Staff order queue
	apiGroup.PATCH("/orders/:id/status", r.queueHandler.SetStatus)

	// Live snapshot streams
	wsGroup := e.Group("/ws")
	{
		wsGroup.GET("/menu", r.wsHandler.MenuStream)
		wsGroup.GET("/orders", r.wsHandler.OrdersStream)
	}
}
