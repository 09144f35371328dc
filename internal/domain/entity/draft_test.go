package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func latte() MenuItem {
	return MenuItem{
		Title:          "Latte",
		Category:       CategoryCoffee,
		Options:        []string{"Hot", "Iced"},
		IsActive:       true,
		AllowMilk:      true,
		AllowSweetener: true,
	}
}

func plainCocoa() MenuItem {
	return MenuItem{
		Title:    "Hot Chocolate",
		Category: CategorySignature,
		Options:  []string{"Hot"},
		IsActive: true,
	}
}

func TestNewOrderDraft_PreselectsDefaults(t *testing.T) {
	draft := NewOrderDraft(latte())

	assert.Equal(t, StepOptions, draft.Step)
	assert.Equal(t, "Hot", draft.Temperature)
	assert.Equal(t, ShotsDouble, draft.Shots)
	assert.Equal(t, NoSelection, draft.Milk)
	assert.Equal(t, NoSelection, draft.Sweetener)
}

func TestNewOrderDraft_SingleTemperatureAutoSelected(t *testing.T) {
	draft := NewOrderDraft(plainCocoa())

	assert.Equal(t, "Hot", draft.Temperature)
	assert.Empty(t, draft.Shots)
	assert.Empty(t, draft.Milk)
	assert.Empty(t, draft.Sweetener)
}

func TestNewOrderDraft_StartsAtNameWhenNothingToConfigure(t *testing.T) {
	assert.Equal(t, StepName, NewOrderDraft(plainCocoa()).Step)
	assert.Equal(t, StepOptions, NewOrderDraft(latte()).Step)
}

func TestOrderDraft_HasName(t *testing.T) {
	draft := OrderDraft{}
	assert.False(t, draft.HasName())

	draft.CustomerName = "   "
	assert.False(t, draft.HasName())

	draft.CustomerName = " Maria "
	assert.True(t, draft.HasName())
}

func TestOrderDraft_SummaryLines(t *testing.T) {
	tests := []struct {
		name  string
		item  MenuItem
		draft OrderDraft
		want  []string
	}{
		{
			name: "full customization",
			item: latte(),
			draft: OrderDraft{
				Temperature: "Iced",
				Shots:       ShotsSingle,
				Milk:        "Oat",
				Sweetener:   "Honey",
			},
			want: []string{"Latte • Iced • 1 shot", "Milk: Oat", "Sweetener: Honey"},
		},
		{
			name: "neutral selections are omitted",
			item: latte(),
			draft: OrderDraft{
				Temperature: "Hot",
				Shots:       ShotsDouble,
				Milk:        NoSelection,
				Sweetener:   NoSelection,
			},
			want: []string{"Latte • Hot • 2 shots"},
		},
		{
			name: "milk line never appears when the selector is hidden",
			item: MenuItem{
				Title:    "Americano",
				Category: CategoryCoffee,
				Options:  []string{"Hot", "Iced"},
			},
			draft: OrderDraft{
				Temperature: "Hot",
				Shots:       ShotsDouble,
				Milk:        "Oat", // stale value from an earlier catalog state
			},
			want: []string{"Americano • Hot • 2 shots"},
		},
		{
			name:  "plain drink is a single line",
			item:  plainCocoa(),
			draft: OrderDraft{Temperature: "Hot"},
			want:  []string{"Hot Chocolate • Hot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.SummaryLines(tt.item))
		})
	}
}

func TestOrderDraft_ToOrder(t *testing.T) {
	draft := OrderDraft{
		ItemTitle:    "Latte",
		Temperature:  "Iced",
		Shots:        ShotsSingle,
		Milk:         "Oat",
		Sweetener:    NoSelection,
		CustomerName: " Maria ",
	}

	order := draft.ToOrder(latte())

	assert.Equal(t, "Latte", order.Drink)
	assert.Equal(t, "Iced", order.Temperature)
	assert.Equal(t, ShotsSingle, order.Shots)
	assert.Equal(t, "Oat", order.Milk)
	assert.Empty(t, order.Sweetener) // neutral selection dropped
	assert.Equal(t, "Maria", order.Name)
	assert.Equal(t, StatusPending, order.Status)
	assert.True(t, order.CreatedAt.IsZero()) // store-assigned
	assert.Equal(t, []string{"Latte • Iced • 1 shot", "Milk: Oat"}, order.SummaryLines)
}

func TestOrderDraft_ToOrder_ShotsOnlyForCoffee(t *testing.T) {
	draft := OrderDraft{
		ItemTitle:   "Hot Chocolate",
		Temperature: "Hot",
		Shots:       ShotsDouble, // stale, selector never shown
	}

	order := draft.ToOrder(plainCocoa())
	assert.Empty(t, order.Shots)
}
