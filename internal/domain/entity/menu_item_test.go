package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveVisibleFields(t *testing.T) {
	tests := []struct {
		name string
		item MenuItem
		want VisibleFields
	}{
		{
			name: "latte with two temperatures",
			item: MenuItem{
				Title:          "Latte",
				Category:       CategoryCoffee,
				Options:        []string{"Hot", "Iced"},
				AllowMilk:      true,
				AllowSweetener: true,
			},
			want: VisibleFields{Temperature: true, Shots: true, Milk: true, Sweetener: true},
		},
		{
			name: "single temperature hides the selector",
			item: MenuItem{
				Title:     "Cortado",
				Category:  CategoryCoffee,
				Options:   []string{"Hot"},
				AllowMilk: true,
			},
			want: VisibleFields{Shots: true, Milk: true},
		},
		{
			name: "signature drink offers no shots",
			item: MenuItem{
				Title:          "Hot Chocolate",
				Category:       CategorySignature,
				Options:        []string{"Hot", "Iced"},
				AllowSweetener: true,
			},
			want: VisibleFields{Temperature: true, Sweetener: true},
		},
		{
			name: "nothing to configure",
			item: MenuItem{
				Title:    "Cascara Tea",
				Category: CategorySignature,
				Options:  []string{"Hot"},
			},
			want: VisibleFields{},
		},
		{
			name: "no options at all",
			item: MenuItem{
				Title:    "Mystery Drink",
				Category: CategorySignature,
			},
			want: VisibleFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveVisibleFields(tt.item)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != VisibleFields{}, got.Any())
		})
	}
}

func TestMenuItem_DefaultTemperature(t *testing.T) {
	single := MenuItem{Options: []string{"Iced"}}
	temp, ok := single.DefaultTemperature()
	assert.True(t, ok)
	assert.Equal(t, "Iced", temp)

	choice := MenuItem{Options: []string{"Hot", "Iced"}}
	_, ok = choice.DefaultTemperature()
	assert.False(t, ok)

	none := MenuItem{}
	_, ok = none.DefaultTemperature()
	assert.False(t, ok)
}

func TestNextSortOrder(t *testing.T) {
	items := []MenuItem{
		{Title: "Latte", Category: CategoryCoffee, SortOrder: 10},
		{Title: "Mocha", Category: CategoryCoffee, SortOrder: 30},
		{Title: "Hot Chocolate", Category: CategorySignature, SortOrder: 50},
	}

	// One spacing step past the category's highest key
	assert.Equal(t, 40, NextSortOrder(items, CategoryCoffee))
	assert.Equal(t, 60, NextSortOrder(items, CategorySignature))

	// Empty category starts at the first step
	assert.Equal(t, 10, NextSortOrder(nil, CategoryCoffee))
}

func TestSortOrderForIndex(t *testing.T) {
	// Keys are spaced multiples so later inserts never force a renumber
	for index := 0; index < 5; index++ {
		key := SortOrderForIndex(index)
		assert.Equal(t, (index+1)*SortOrderSpacing, key)
		assert.Zero(t, key%SortOrderSpacing)
	}
}

func TestFindItemByTitle(t *testing.T) {
	items := []MenuItem{
		{ID: "1", Title: "Latte"},
		{ID: "2", Title: "Mocha"},
	}

	item, ok := FindItemByTitle(items, "Mocha")
	assert.True(t, ok)
	assert.Equal(t, "2", item.ID)

	// A dangling reference resolves to absent, never an error
	_, ok = FindItemByTitle(items, "Renamed Drink")
	assert.False(t, ok)
}

func TestActiveItems(t *testing.T) {
	items := []MenuItem{
		{Title: "Latte", IsActive: true},
		{Title: "Hidden", IsActive: false},
	}

	active := ActiveItems(items)
	assert.Len(t, active, 1)
	assert.Equal(t, "Latte", active[0].Title)
}
