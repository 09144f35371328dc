// Package entity contains the core business objects of the project.
package entity

// MenuCategory groups menu items into display sections.
type MenuCategory string

const (
	// CategoryCoffee is the espresso-based section of the menu.
	CategoryCoffee MenuCategory = "coffee"
	// CategorySignature is the section for signature (non-espresso) drinks.
	CategorySignature MenuCategory = "signature"
)

// Valid reports whether the category is one of the known sections.
func (c MenuCategory) Valid() bool {
	return c == CategoryCoffee || c == CategorySignature
}

// SortOrderSpacing is the gap between assigned sort keys. Keys are spaced so
// a future item can be inserted between two neighbours without renumbering
// the whole category.
const SortOrderSpacing = 10

// MenuItem represents a single drink on the menu. The ID is assigned by the
// catalog store on creation.
type MenuItem struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Category       MenuCategory `json:"category"`
	Options        []string     `json:"options"`    // ordered temperature options, e.g. ["Hot","Iced"]
	ComingSoon     bool         `json:"comingSoon"` // shown on the menu but not orderable
	IsActive       bool         `json:"isActive"`   // visibility gate
	SortOrder      int          `json:"sortOrder"`  // ascending display order within the category
	Description    string       `json:"description"`
	AllowMilk      bool         `json:"allowMilk"`
	AllowSweetener bool         `json:"allowSweetener"`
}

// IsCoffee reports whether the item belongs to the coffee category and thus
// offers a shot selection.
func (m MenuItem) IsCoffee() bool {
	return m.Category == CategoryCoffee
}

// HasTemperatureChoice reports whether the guest is offered a temperature
// selector. Items with zero or one option give the guest nothing to choose.
func (m MenuItem) HasTemperatureChoice() bool {
	return len(m.Options) > 1
}

// DefaultTemperature returns the pre-selected temperature when the item
// exposes exactly one option, and ok=false otherwise.
func (m MenuItem) DefaultTemperature() (string, bool) {
	if len(m.Options) == 1 {
		return m.Options[0], true
	}

	return "", false
}

// HasTemperature reports whether the given value is one of the item's
// temperature options.
func (m MenuItem) HasTemperature(value string) bool {
	for _, option := range m.Options {
		if option == value {
			return true
		}
	}

	return false
}

// VisibleFields describes which customization selectors the dialog shows for
// a given item. It must be re-derived from the live catalog on every use,
// because operator edits can arrive mid-session.
type VisibleFields struct {
	Temperature bool `json:"temperature"`
	Shots       bool `json:"shots"`
	Milk        bool `json:"milk"`
	Sweetener   bool `json:"sweetener"`
}

// Any reports whether at least one selector is visible.
func (f VisibleFields) Any() bool {
	return f.Temperature || f.Shots || f.Milk || f.Sweetener
}

// DeriveVisibleFields computes the selector set for an item. This is a pure
// function of the item's attributes; drink identity never matters.
func DeriveVisibleFields(item MenuItem) VisibleFields {
	return VisibleFields{
		Temperature: item.HasTemperatureChoice(),
		Shots:       item.IsCoffee(),
		Milk:        item.AllowMilk,
		Sweetener:   item.AllowSweetener,
	}
}

// NextSortOrder returns the sort key for a new item in the given category:
// one spacing step past the highest existing key, or the first step when the
// category is empty.
func NextSortOrder(items []MenuItem, category MenuCategory) int {
	maxOrder := 0
	for _, item := range items {
		if item.Category == category && item.SortOrder > maxOrder {
			maxOrder = item.SortOrder
		}
	}

	return maxOrder + SortOrderSpacing
}

// SortOrderForIndex returns the sort key assigned to the item at the given
// position when a category is renumbered after a drag-and-drop reorder.
func SortOrderForIndex(index int) int {
	return (index + 1) * SortOrderSpacing
}

// ItemsInCategory filters a sorted snapshot down to one category, preserving
// the delivered order.
func ItemsInCategory(items []MenuItem, category MenuCategory) []MenuItem {
	filtered := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// ActiveItems filters a snapshot down to the items visible to guests.
func ActiveItems(items []MenuItem) []MenuItem {
	filtered := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if item.IsActive {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// FindItemByTitle resolves a draft's weak reference to its menu item. A
// title that no longer exists resolves to absent, never an error.
func FindItemByTitle(items []MenuItem, title string) (MenuItem, bool) {
	for _, item := range items {
		if item.Title == title {
			return item, true
		}
	}

	return MenuItem{}, false
}
