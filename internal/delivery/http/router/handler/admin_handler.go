package handler

import (
	"log/slog"
	"net/http"

	"homecafe/internal/delivery/http/response"
	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"
	"homecafe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// AdminHandler exposes the operator's catalog management endpoints.
type AdminHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateItemRequest represents the request body for creating a menu item.
// An absent sortOrder places the item at the end of its category.
type CreateItemRequest struct {
	Title          string   `json:"title" validate:"required"`
	Category       string   `json:"category" validate:"required,oneof=coffee signature"`
	Options        []string `json:"options"`
	ComingSoon     bool     `json:"comingSoon"`
	IsActive       *bool    `json:"isActive"`
	SortOrder      *int     `json:"sortOrder"`
	Description    string   `json:"description"`
	AllowMilk      *bool    `json:"allowMilk"`
	AllowSweetener *bool    `json:"allowSweetener"`
}

// UpdateItemRequest represents the partial update body for a menu item.
// Absent fields are left untouched.
type UpdateItemRequest struct {
	Title          *string   `json:"title"`
	Category       *string   `json:"category"`
	Options        *[]string `json:"options"`
	ComingSoon     *bool     `json:"comingSoon"`
	IsActive       *bool     `json:"isActive"`
	SortOrder      *int      `json:"sortOrder"`
	Description    *string   `json:"description"`
	AllowMilk      *bool     `json:"allowMilk"`
	AllowSweetener *bool     `json:"allowSweetener"`
}

// ReorderRequest represents the request body for reordering a category
type ReorderRequest struct {
	Category   string   `json:"category" validate:"required,oneof=coffee signature"`
	OrderedIDs []string `json:"orderedIds" validate:"required,min=1"`
}

// UpdateConfigRequest represents the partial merge body for the menu config.
// Absent fields are left untouched.
type UpdateConfigRequest struct {
	Sweeteners               *[]string `json:"sweeteners"`
	Milks                    *[]string `json:"milks"`
	HeroHighlightPrimaryID   *string   `json:"heroHighlightPrimaryId"`
	HeroHighlightSecondaryID *string   `json:"heroHighlightSecondaryId"`
	HeroTitle                *string   `json:"heroTitle"`
	HeroBody                 *string   `json:"heroBody"`
	MenuTitle                *string   `json:"menuTitle"`
	MenuBody                 *string   `json:"menuBody"`
}

// CreateItem handles new menu item creation
func (h *AdminHandler) CreateItem(c echo.Context) error {
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.CreateMenuItemInput{
		Title:          req.Title,
		Category:       entity.MenuCategory(req.Category),
		Options:        req.Options,
		ComingSoon:     req.ComingSoon,
		IsActive:       boolOrDefault(req.IsActive, true),
		SortOrder:      req.SortOrder,
		Description:    req.Description,
		AllowMilk:      boolOrDefault(req.AllowMilk, true),
		AllowSweetener: boolOrDefault(req.AllowSweetener, true),
	}

	id, err := h.catalogUC.CreateItem(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, map[string]string{"id": id}, "Menu item created")
}

// UpdateItem handles partial menu item updates
func (h *AdminHandler) UpdateItem(c echo.Context) error {
	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}

	patch := repository.MenuItemPatch{
		Title:          req.Title,
		Options:        req.Options,
		ComingSoon:     req.ComingSoon,
		IsActive:       req.IsActive,
		SortOrder:      req.SortOrder,
		Description:    req.Description,
		AllowMilk:      req.AllowMilk,
		AllowSweetener: req.AllowSweetener,
	}
	if req.Category != nil {
		category := entity.MenuCategory(*req.Category)
		patch.Category = &category
	}

	if err := h.catalogUC.UpdateItem(c.Request().Context(), c.Param("id"), patch); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Menu item updated")
}

// DeleteItem handles menu item deletion
func (h *AdminHandler) DeleteItem(c echo.Context) error {
	if err := h.catalogUC.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Menu item deleted")
}

// ReorderItems renumbers a category after a drag-and-drop reorder
func (h *AdminHandler) ReorderItems(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.catalogUC.ReorderCategory(c.Request().Context(), entity.MenuCategory(req.Category), req.OrderedIDs); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Menu order saved")
}

// UpdateConfig merges a partial update into the menu config
func (h *AdminHandler) UpdateConfig(c echo.Context) error {
	var req UpdateConfigRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid config input")
	}

	patch := repository.MenuConfigPatch{
		Sweeteners:               req.Sweeteners,
		Milks:                    req.Milks,
		HeroHighlightPrimaryID:   req.HeroHighlightPrimaryID,
		HeroHighlightSecondaryID: req.HeroHighlightSecondaryID,
		HeroTitle:                req.HeroTitle,
		HeroBody:                 req.HeroBody,
		MenuTitle:                req.MenuTitle,
		MenuBody:                 req.MenuBody,
	}

	if err := h.catalogUC.SaveConfig(c.Request().Context(), patch); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Menu config saved")
}

func boolOrDefault(value *bool, def bool) bool {
	if value != nil {
		return *value
	}

	return def
}
