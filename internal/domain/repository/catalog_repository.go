// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"homecafe/internal/domain/entity"
	"homecafe/internal/errors"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrItemNotFound is returned when a menu item is not found.
	ErrItemNotFound = errors.New("menu item not found")
)

// Unsubscribe releases a snapshot subscription. Every subscription handle
// must be released on every exit path of the owning view's lifetime; a
// leaked handle keeps delivering snapshots to a consumer that is gone.
type Unsubscribe func()

// ItemsHandler receives a full menu snapshot, ordered by ascending
// sortOrder, on every change to the collection (including the initial read).
type ItemsHandler func(items []entity.MenuItem)

// ConfigHandler receives a full config snapshot on every change to the
// singleton config document (including the initial read).
type ConfigHandler func(config entity.MenuConfig)

// ErrorHandler receives subscription delivery failures. The store falls back
// to an empty/default snapshot rather than leaving stale data displayed.
type ErrorHandler func(err error)

// MenuItemPatch is a partial update of a menu item. Nil fields are left
// untouched by the merge.
type MenuItemPatch struct {
	Title          *string
	Category       *entity.MenuCategory
	Options        *[]string
	ComingSoon     *bool
	IsActive       *bool
	SortOrder      *int
	Description    *string
	AllowMilk      *bool
	AllowSweetener *bool
}

// MenuConfigPatch is a partial merge into the singleton config document.
// Nil fields are left untouched; the document is created on first write.
type MenuConfigPatch struct {
	Sweeteners               *[]string
	Milks                    *[]string
	HeroHighlightPrimaryID   *string
	HeroHighlightSecondaryID *string
	HeroTitle                *string
	HeroBody                 *string
	MenuTitle                *string
	MenuBody                 *string
}

// CatalogRepository is the read/write contract with the remote document
// store for menu items and the singleton menu config. Every write fans out
// to all active subscribers, the originating session included; there is no
// separate local-echo path.
type CatalogRepository interface {
	// SubscribeItems delivers a full item snapshot on every collection change.
	SubscribeItems(ctx context.Context, onItems ItemsHandler, onError ErrorHandler) (Unsubscribe, error)

	// SubscribeConfig delivers a full config snapshot on every document change.
	SubscribeConfig(ctx context.Context, onConfig ConfigHandler, onError ErrorHandler) (Unsubscribe, error)

	// CreateItem persists a new menu item and returns its store-assigned id.
	CreateItem(ctx context.Context, item entity.MenuItem) (string, error)

	// UpdateItem applies a partial merge to an existing item.
	UpdateItem(ctx context.Context, id string, patch MenuItemPatch) error

	// DeleteItem removes the item permanently.
	DeleteItem(ctx context.Context, id string) error

	// SaveConfig merges a partial update into the singleton config document,
	// creating it if absent.
	SaveConfig(ctx context.Context, patch MenuConfigPatch) error
}
