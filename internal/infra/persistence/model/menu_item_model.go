// Package model contains the Firestore-specific document structs. Optional
// fields are pointers so a missing field can be told apart from an explicit
// zero and filled with its documented default; downstream code never
// observes "undefined" semantics.
package model

import (
	"homecafe/internal/domain/entity"
)

// MenuItemModel is the document shape of the 'menuItems' collection.
type MenuItemModel struct {
	Title          string   `firestore:"title"`
	Category       string   `firestore:"category"`
	Options        []string `firestore:"options"`
	ComingSoon     *bool    `firestore:"comingSoon"`
	IsActive       *bool    `firestore:"isActive"`
	SortOrder      *int     `firestore:"sortOrder"`
	Description    *string  `firestore:"description"`
	AllowMilk      *bool    `firestore:"allowMilk"`
	AllowSweetener *bool    `firestore:"allowSweetener"`
}

// ToEntity converts the document to a domain item, applying defaults for
// missing optional fields.
func (m MenuItemModel) ToEntity(id string) entity.MenuItem {
	item := entity.MenuItem{
		ID:             id,
		Title:          m.Title,
		Category:       entity.MenuCategory(m.Category),
		Options:        m.Options,
		ComingSoon:     boolOr(m.ComingSoon, false),
		IsActive:       boolOr(m.IsActive, true),
		SortOrder:      intOr(m.SortOrder, 0),
		Description:    stringOr(m.Description, ""),
		AllowMilk:      boolOr(m.AllowMilk, true),
		AllowSweetener: boolOr(m.AllowSweetener, true),
	}
	if item.Options == nil {
		item.Options = []string{}
	}

	return item
}

// NewMenuItemModel builds a fully-populated document for a create, so no
// later reader depends on defaulting for this record.
func NewMenuItemModel(item entity.MenuItem) MenuItemModel {
	options := item.Options
	if options == nil {
		options = []string{}
	}

	return MenuItemModel{
		Title:          item.Title,
		Category:       string(item.Category),
		Options:        options,
		ComingSoon:     ptr(item.ComingSoon),
		IsActive:       ptr(item.IsActive),
		SortOrder:      ptr(item.SortOrder),
		Description:    ptr(item.Description),
		AllowMilk:      ptr(item.AllowMilk),
		AllowSweetener: ptr(item.AllowSweetener),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}

	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}

	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}

	return *v
}
