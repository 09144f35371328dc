package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenuConfig_DisplayFallbacks(t *testing.T) {
	var config MenuConfig

	assert.Equal(t, DefaultHeroTitle, config.DisplayHeroTitle())
	assert.Equal(t, DefaultHeroBody, config.DisplayHeroBody())
	assert.Equal(t, DefaultMenuTitle, config.DisplayMenuTitle())
	assert.Equal(t, DefaultMenuBody, config.DisplayMenuBody())

	config.HeroTitle = "  Open house weekend  "
	assert.Equal(t, "Open house weekend", config.DisplayHeroTitle())

	// Whitespace-only copy falls back too
	config.MenuTitle = "   "
	assert.Equal(t, DefaultMenuTitle, config.DisplayMenuTitle())
}

func TestResolveHighlight(t *testing.T) {
	items := []MenuItem{
		{ID: "latte", Title: "Latte", IsActive: true},
		{ID: "mocha", Title: "Mocha", IsActive: false},
	}

	item, ok := ResolveHighlight(items, "latte")
	assert.True(t, ok)
	assert.Equal(t, "Latte", item.Title)

	// Deactivated items resolve to absent
	_, ok = ResolveHighlight(items, "mocha")
	assert.False(t, ok)

	// Dangling and empty ids resolve to absent
	_, ok = ResolveHighlight(items, "deleted")
	assert.False(t, ok)
	_, ok = ResolveHighlight(items, "")
	assert.False(t, ok)
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusServed.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("done").Valid())

	assert.False(t, StatusPending.Closed())
	assert.False(t, StatusInProgress.Closed())
	assert.True(t, StatusServed.Closed())
	assert.True(t, StatusCancelled.Closed())
}
