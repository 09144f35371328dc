package model

import (
	"time"

	"homecafe/internal/domain/entity"
)

// OrderModel is the document shape of the 'orders' collection. CreatedAt
// carries the serverTimestamp tag so the store assigns the creation time on
// write.
type OrderModel struct {
	Drink        string    `firestore:"drink"`
	Temperature  *string   `firestore:"temperature"`
	Shots        *string   `firestore:"shots"`
	Milk         *string   `firestore:"milk"`
	Sweetener    *string   `firestore:"sweetener"`
	Name         *string   `firestore:"name"`
	SummaryLines []string  `firestore:"summaryLines"`
	CreatedAt    time.Time `firestore:"createdAt,serverTimestamp"`
	Status       *string   `firestore:"status"`
}

// ToEntity converts the document to a domain order, applying defaults for
// missing optional fields.
func (m OrderModel) ToEntity(id string) entity.Order {
	order := entity.Order{
		ID:           id,
		Drink:        m.Drink,
		Temperature:  stringOr(m.Temperature, ""),
		Shots:        stringOr(m.Shots, ""),
		Milk:         stringOr(m.Milk, ""),
		Sweetener:    stringOr(m.Sweetener, ""),
		Name:         stringOr(m.Name, ""),
		SummaryLines: m.SummaryLines,
		CreatedAt:    m.CreatedAt,
		Status:       entity.OrderStatus(stringOr(m.Status, string(entity.StatusPending))),
	}
	if order.Drink == "" {
		order.Drink = "Unknown drink"
	}
	if order.SummaryLines == nil {
		order.SummaryLines = []string{}
	}

	return order
}

// NewOrderModel builds the document for a create. Optional selections are
// stored as null, matching how the queue view reads them back.
func NewOrderModel(order entity.Order) OrderModel {
	lines := order.SummaryLines
	if lines == nil {
		lines = []string{}
	}

	return OrderModel{
		Drink:        order.Drink,
		Temperature:  optional(order.Temperature),
		Shots:        optional(order.Shots),
		Milk:         optional(order.Milk),
		Sweetener:    optional(order.Sweetener),
		Name:         optional(order.Name),
		SummaryLines: lines,
		Status:       ptr(string(order.Status)),
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}

	return &v
}
