package model

import (
	"homecafe/internal/domain/entity"
)

// MenuConfigModel is the shape of the singleton 'menuConfig/default'
// document.
type MenuConfigModel struct {
	Sweeteners               []string `firestore:"sweeteners"`
	Milks                    []string `firestore:"milks"`
	HeroHighlightPrimaryID   *string  `firestore:"heroHighlightPrimaryId"`
	HeroHighlightSecondaryID *string  `firestore:"heroHighlightSecondaryId"`
	HeroTitle                *string  `firestore:"heroTitle"`
	HeroBody                 *string  `firestore:"heroBody"`
	MenuTitle                *string  `firestore:"menuTitle"`
	MenuBody                 *string  `firestore:"menuBody"`
}

// ToEntity converts the document to a domain config, applying defaults for
// missing fields. A missing document converts to the all-defaults config.
func (m MenuConfigModel) ToEntity() entity.MenuConfig {
	cfg := entity.MenuConfig{
		Sweeteners:               m.Sweeteners,
		Milks:                    m.Milks,
		HeroHighlightPrimaryID:   stringOr(m.HeroHighlightPrimaryID, ""),
		HeroHighlightSecondaryID: stringOr(m.HeroHighlightSecondaryID, ""),
		HeroTitle:                stringOr(m.HeroTitle, ""),
		HeroBody:                 stringOr(m.HeroBody, ""),
		MenuTitle:                stringOr(m.MenuTitle, ""),
		MenuBody:                 stringOr(m.MenuBody, ""),
	}
	if cfg.Sweeteners == nil {
		cfg.Sweeteners = []string{}
	}
	if cfg.Milks == nil {
		cfg.Milks = []string{}
	}

	return cfg
}
