package usecase

import (
	"context"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"
)

// CreateMenuItemInput carries the operator-provided fields for a new menu
// item. A nil SortOrder places the item at the end of its category.
type CreateMenuItemInput struct {
	Title          string
	Category       entity.MenuCategory
	Options        []string
	ComingSoon     bool
	IsActive       bool
	SortOrder      *int
	Description    string
	AllowMilk      bool
	AllowSweetener bool
}

// MenuView is the assembled guest-facing menu: the live catalog snapshot
// plus the singleton config with hero highlights re-resolved against the
// active items.
type MenuView struct {
	Coffee    []entity.MenuItem `json:"coffee"`
	Signature []entity.MenuItem `json:"signature"`

	HeroTitle string `json:"heroTitle"`
	HeroBody  string `json:"heroBody"`
	MenuTitle string `json:"menuTitle"`
	MenuBody  string `json:"menuBody"`

	// Highlights are absent (nil) when the configured id is dangling or the
	// item has been deactivated.
	HeroHighlightPrimary   *entity.MenuItem `json:"heroHighlightPrimary,omitempty"`
	HeroHighlightSecondary *entity.MenuItem `json:"heroHighlightSecondary,omitempty"`

	Sweeteners []string `json:"sweeteners"`
	Milks      []string `json:"milks"`
}

// CatalogUsecase defines the interface for menu catalog management use cases.
// It maintains a live view of the catalog fed by store snapshots; reads are
// served from that view and never block on the store.
type CatalogUsecase interface {
	// Start opens the live catalog subscriptions. Must be called before any
	// read; typically wired to the application lifecycle.
	Start(ctx context.Context) error

	// Stop releases the live catalog subscriptions.
	Stop()

	// Items returns the current item snapshot, ordered by ascending sort key.
	Items() []entity.MenuItem

	// Config returns the current singleton config snapshot.
	Config() entity.MenuConfig

	// Menu assembles the guest-facing menu view from the current snapshots.
	Menu() MenuView

	// CreateItem validates and persists a new menu item, assigning it the
	// next sort key in its category. Returns the store-assigned id.
	CreateItem(ctx context.Context, input CreateMenuItemInput) (string, error)

	// UpdateItem applies a partial merge to an existing item.
	UpdateItem(ctx context.Context, id string, patch repository.MenuItemPatch) error

	// DeleteItem removes the item permanently.
	DeleteItem(ctx context.Context, id string) error

	// SaveConfig merges a partial update into the singleton config document.
	SaveConfig(ctx context.Context, patch repository.MenuConfigPatch) error

	// ReorderCategory renumbers a category to match the given id order. Each
	// item gets its own update with no rollback; a partial failure leaves the
	// successful writes in place and is reported to the caller.
	ReorderCategory(ctx context.Context, category entity.MenuCategory, orderedIDs []string) error

	// SubscribeItems delivers a full item snapshot on every catalog change.
	SubscribeItems(ctx context.Context, onItems repository.ItemsHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error)

	// SubscribeConfig delivers a full config snapshot on every config change.
	SubscribeConfig(ctx context.Context, onConfig repository.ConfigHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error)
}
