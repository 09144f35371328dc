package repository

import (
	"context"

	"homecafe/internal/domain/entity"
	"homecafe/internal/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
)

// OrdersHandler receives a full queue snapshot, ordered by createdAt
// descending, on every change to the orders collection.
type OrdersHandler func(orders []entity.Order)

// OrderRepository is the read/write contract with the remote document store
// for submitted orders.
type OrderRepository interface {
	// SubscribeOrders delivers a full queue snapshot on every change.
	SubscribeOrders(ctx context.Context, onOrders OrdersHandler, onError ErrorHandler) (Unsubscribe, error)

	// CreateOrder persists a new order with a server-assigned creation
	// timestamp and returns its store-assigned id.
	CreateOrder(ctx context.Context, order entity.Order) (string, error)

	// SetStatus unconditionally overwrites the order's status. No version
	// check, last write wins.
	SetStatus(ctx context.Context, id string, status entity.OrderStatus) error
}
