package firestore

import (
	"context"
	"log/slog"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"
	"homecafe/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type orderRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewOrderRepository creates a Firestore-backed order repository.
func NewOrderRepository(client *firestore.Client, logger *slog.Logger) repository.OrderRepository {
	return &orderRepository{
		client: client,
		logger: logger,
	}
}

// SubscribeOrders streams full queue snapshots, newest first.
func (r *orderRepository) SubscribeOrders(ctx context.Context, onOrders repository.OrdersHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	query := r.client.Collection(ordersCollection).OrderBy("createdAt", firestore.Desc)

	go func() {
		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				r.logger.Error("orders subscription failed", slog.Any("error", err))
				onOrders([]entity.Order{})
				if onError != nil {
					onError(errors.Wrap(err, "orders snapshot listener"))
				}

				return
			}

			orders, err := decodeOrders(snap)
			if err != nil {
				r.logger.Error("orders snapshot decode failed", slog.Any("error", err))
				if onError != nil {
					onError(err)
				}

				continue
			}

			onOrders(orders)
		}
	}()

	return repository.Unsubscribe(cancel), nil
}

// CreateOrder persists a new order. The zero CreatedAt makes Firestore
// assign the server timestamp.
func (r *orderRepository) CreateOrder(ctx context.Context, order entity.Order) (string, error) {
	ref, _, err := r.client.Collection(ordersCollection).Add(ctx, model.NewOrderModel(order))
	if err != nil {
		return "", errors.Wrap(err, "failed to create order")
	}

	return ref.ID, nil
}

// SetStatus unconditionally overwrites the status field. Last write wins.
func (r *orderRepository) SetStatus(ctx context.Context, id string, orderStatus entity.OrderStatus) error {
	_, err := r.client.Collection(ordersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(orderStatus)},
	})
	if status.Code(err) == codes.NotFound {
		return repository.ErrOrderNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to update order status")
	}

	return nil
}

func decodeOrders(snap *firestore.QuerySnapshot) ([]entity.Order, error) {
	orders := []entity.Order{}
	for {
		doc, err := snap.Documents.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate orders snapshot")
		}

		var data model.OrderModel
		if err := doc.DataTo(&data); err != nil {
			return nil, errors.Wrap(err, "decode order")
		}
		orders = append(orders, data.ToEntity(doc.Ref.ID))
	}

	return orders, nil
}
