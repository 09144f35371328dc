package usecase

import (
	"context"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"
)

// QueueUsecase defines the interface for the staff order queue.
type QueueUsecase interface {
	// SubscribeOrders delivers a full queue snapshot, newest first, on every
	// change to the orders collection.
	SubscribeOrders(ctx context.Context, onOrders repository.OrdersHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error)

	// SetStatus overwrites an order's status. Unknown status values are
	// rejected up front; store failures are logged and swallowed, the next
	// snapshot simply shows whatever state won.
	SetStatus(ctx context.Context, id string, status entity.OrderStatus) error
}
