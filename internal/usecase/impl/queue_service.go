package impl

import (
	"context"
	"log/slog"

	"homecafe/internal/domain/entity"
	domainerrors "homecafe/internal/domain/errors"
	"homecafe/internal/domain/repository"
	"homecafe/internal/usecase"

	"go.uber.org/fx"
)

type queueService struct {
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// QueueServiceParams holds dependencies for QueueService, injected by Fx.
type QueueServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewQueueService creates a new queue service instance
func NewQueueService(params QueueServiceParams) usecase.QueueUsecase {
	return &queueService{
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

// SubscribeOrders delivers a full queue snapshot on every change.
func (s *queueService) SubscribeOrders(ctx context.Context, onOrders repository.OrdersHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	return s.orderRepo.SubscribeOrders(ctx, onOrders, onError)
}

// SetStatus overwrites an order's status, fire-and-forget. Store failures
// are logged and swallowed: the staff view keeps tracking whatever snapshot
// the store delivers next, so a lost write simply never shows up.
func (s *queueService) SetStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	if !status.Valid() {
		return domainerrors.ErrInvalidStatus.WithDetails(string(status))
	}

	if err := s.orderRepo.SetStatus(ctx, id, status); err != nil {
		s.logger.Error("failed to set order status",
			slog.String("id", id),
			slog.String("status", string(status)),
			slog.Any("error", err),
		)
	}

	return nil
}
