package handler

import (
	"log/slog"
	"net/http"

	"homecafe/internal/delivery/http/response"
	"homecafe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.OrderSessionUsecase
	Logger    *slog.Logger
}

// SessionHandler drives the guest ordering dialog over HTTP.
type SessionHandler struct {
	sessionUC usecase.OrderSessionUsecase
	logger    *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// OpenDraftRequest represents the request body for opening an order draft
type OpenDraftRequest struct {
	ItemTitle string `json:"itemTitle" validate:"required"`
}

// SetFieldRequest represents the request body for a customization choice
type SetFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// OpenDraft starts a new ordering dialog for a menu item
func (h *SessionHandler) OpenDraft(c echo.Context) error {
	var req OpenDraftRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid draft input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.sessionUC.OpenDraft(c.Request().Context(), req.ItemTitle)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, view, "Draft opened")
}

// GetDraft returns the current dialog state
func (h *SessionHandler) GetDraft(c echo.Context) error {
	view, err := h.sessionUC.Draft(c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, view, "")
}

// SetField records a customization choice
func (h *SessionHandler) SetField(c echo.Context) error {
	var req SetFieldRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid field input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.sessionUC.SetField(c.Param("id"), req.Field, req.Value)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, view, "")
}

// Advance moves the dialog forward one step
func (h *SessionHandler) Advance(c echo.Context) error {
	view, err := h.sessionUC.Advance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, view, "")
}

// Back moves the dialog one step back, or dismisses it when there is no
// earlier step
func (h *SessionHandler) Back(c echo.Context) error {
	view, err := h.sessionUC.Back(c.Param("id"))
	if err != nil {
		return err
	}
	if view == nil {
		return response.Success(c, http.StatusOK, map[string]bool{"dismissed": true}, "Draft dismissed")
	}

	return response.Success(c, http.StatusOK, view, "")
}

// Cancel dismisses the dialog from any step
func (h *SessionHandler) Cancel(c echo.Context) error {
	if err := h.sessionUC.Cancel(c.Param("id")); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Draft dismissed")
}
