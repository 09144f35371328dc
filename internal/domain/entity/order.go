package entity

import "time"

// OrderStatus is the staff-visible state of a submitted order.
//
// Transitions are staff-driven and deliberately unguarded: any status can be
// overwritten with any other, last write wins.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in-progress"
	StatusServed     OrderStatus = "served"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusServed, StatusCancelled:
		return true
	}

	return false
}

// Closed reports whether the order is finished from the staff's point of
// view. Closed orders stay in the queue snapshot but are de-emphasized.
func (s OrderStatus) Closed() bool {
	return s == StatusServed || s == StatusCancelled
}

// Order is a submitted drink order. Every field except Status is a snapshot
// taken at submission time, not a live reference to the catalog; later menu
// edits never change a ticket already in the queue.
type Order struct {
	ID           string      `json:"id"`
	Drink        string      `json:"drink"`
	Temperature  string      `json:"temperature,omitempty"`
	Shots        string      `json:"shots,omitempty"` // present only for coffee drinks
	Milk         string      `json:"milk,omitempty"`
	Sweetener    string      `json:"sweetener,omitempty"`
	Name         string      `json:"name,omitempty"`
	SummaryLines []string    `json:"summaryLines"`
	CreatedAt    time.Time   `json:"createdAt"` // server-assigned
	Status       OrderStatus `json:"status"`
}
