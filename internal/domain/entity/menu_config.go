package entity

import "strings"

// Fallback copy shown when the operator has not customized the page text.
const (
	DefaultHeroTitle = "Bienvenido a nuestra casita!"
	DefaultHeroBody  = "Welcome to our home! We're genuinely happy to share this experience with you. " +
		"Please relax, make yourself comfortable, and enjoy a curated selection of our favorite drinks."
	DefaultMenuTitle = "Thoughtful drinks, small but considered."
	DefaultMenuBody  = "Our beans are responsibly sourced from Colombia and roasted to a balanced " +
		"medium roast for a smooth, rich cup."
)

// MenuConfig is the singleton, live-editable configuration document shared
// by every session. Each session holds its own copy refreshed by snapshot
// notifications; there is no process-wide shared instance.
type MenuConfig struct {
	Sweeteners []string `json:"sweeteners"` // insertion order is operator-controlled
	Milks      []string `json:"milks"`

	// Hero highlights are weak references to menu item ids. They must be
	// re-resolved against the current active items on every use; a dangling
	// id renders as absent.
	HeroHighlightPrimaryID   string `json:"heroHighlightPrimaryId"`
	HeroHighlightSecondaryID string `json:"heroHighlightSecondaryId"`

	HeroTitle string `json:"heroTitle"`
	HeroBody  string `json:"heroBody"`
	MenuTitle string `json:"menuTitle"`
	MenuBody  string `json:"menuBody"`
}

// DisplayHeroTitle returns the operator copy or the fallback default.
func (c MenuConfig) DisplayHeroTitle() string {
	return fallback(c.HeroTitle, DefaultHeroTitle)
}

// DisplayHeroBody returns the operator copy or the fallback default.
func (c MenuConfig) DisplayHeroBody() string {
	return fallback(c.HeroBody, DefaultHeroBody)
}

// DisplayMenuTitle returns the operator copy or the fallback default.
func (c MenuConfig) DisplayMenuTitle() string {
	return fallback(c.MenuTitle, DefaultMenuTitle)
}

// DisplayMenuBody returns the operator copy or the fallback default.
func (c MenuConfig) DisplayMenuBody() string {
	return fallback(c.MenuBody, DefaultMenuBody)
}

// ResolveHighlight resolves a hero highlight id against the active items of
// a catalog snapshot. Inactive and deleted items resolve to absent.
func ResolveHighlight(items []MenuItem, id string) (MenuItem, bool) {
	if id == "" {
		return MenuItem{}, false
	}
	for _, item := range items {
		if item.ID == id && item.IsActive {
			return item, true
		}
	}

	return MenuItem{}, false
}

func fallback(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}

	return def
}
