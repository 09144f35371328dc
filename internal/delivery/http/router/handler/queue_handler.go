package handler

import (
	"log/slog"
	"net/http"

	"homecafe/internal/delivery/http/response"
	"homecafe/internal/domain/entity"
	"homecafe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// QueueHandlerParams holds dependencies for QueueHandler, injected by Fx.
type QueueHandlerParams struct {
	fx.In

	QueueUC usecase.QueueUsecase
	Logger  *slog.Logger
}

// QueueHandler exposes the staff order queue endpoints.
type QueueHandler struct {
	queueUC usecase.QueueUsecase
	logger  *slog.Logger
}

// NewQueueHandler is the constructor for QueueHandler
func NewQueueHandler(params QueueHandlerParams) *QueueHandler {
	return &QueueHandler{
		queueUC: params.QueueUC,
		logger:  params.Logger,
	}
}

// SetStatusRequest represents the request body for a status change
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus overwrites an order's status. The write is fire-and-forget:
// the staff view tracks the store's next snapshot rather than this response.
func (h *QueueHandler) SetStatus(c echo.Context) error {
	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.queueUC.SetStatus(c.Request().Context(), c.Param("id"), entity.OrderStatus(req.Status)); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Order status updated")
}
