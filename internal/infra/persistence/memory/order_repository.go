package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"

	"github.com/google/uuid"
)

type storedOrder struct {
	order   entity.Order
	arrival int
}

type orderRepository struct {
	mu     sync.Mutex
	logger *slog.Logger

	orders  map[string]*storedOrder
	arrival int

	subs    map[int]repository.OrdersHandler
	nextSub int
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository(logger *slog.Logger) repository.OrderRepository {
	return &orderRepository{
		logger: logger,
		orders: make(map[string]*storedOrder),
		subs:   make(map[int]repository.OrdersHandler),
	}
}

// SubscribeOrders registers the handler and synchronously delivers the
// current queue snapshot, newest first.
func (r *orderRepository) SubscribeOrders(ctx context.Context, onOrders repository.OrdersHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = onOrders
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	onOrders(snapshot)

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}, nil
}

// CreateOrder assigns an id and the creation timestamp, standing in for the
// remote store's server-side clock.
func (r *orderRepository) CreateOrder(ctx context.Context, order entity.Order) (string, error) {
	r.mu.Lock()
	order.ID = uuid.New().String()
	order.CreatedAt = time.Now()
	if order.SummaryLines == nil {
		order.SummaryLines = []string{}
	}
	r.arrival++
	r.orders[order.ID] = &storedOrder{order: order, arrival: r.arrival}
	subs, snapshot := r.fanoutLocked()
	r.mu.Unlock()

	deliverOrders(subs, snapshot)

	return order.ID, nil
}

// SetStatus unconditionally overwrites the status. Last write wins; setting
// the same status twice is a no-op beyond the snapshot fan-out.
func (r *orderRepository) SetStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	r.mu.Lock()
	stored, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()

		return repository.ErrOrderNotFound
	}
	stored.order.Status = status
	subs, snapshot := r.fanoutLocked()
	r.mu.Unlock()

	deliverOrders(subs, snapshot)

	return nil
}

// snapshotLocked orders by createdAt descending, ties broken by arrival
// order descending so the newest submission still lands on top.
func (r *orderRepository) snapshotLocked() []entity.Order {
	stored := make([]*storedOrder, 0, len(r.orders))
	for _, s := range r.orders {
		stored = append(stored, s)
	}
	sort.SliceStable(stored, func(i, j int) bool {
		if !stored[i].order.CreatedAt.Equal(stored[j].order.CreatedAt) {
			return stored[i].order.CreatedAt.After(stored[j].order.CreatedAt)
		}

		return stored[i].arrival > stored[j].arrival
	})

	orders := make([]entity.Order, 0, len(stored))
	for _, s := range stored {
		orders = append(orders, s.order)
	}

	return orders
}

func (r *orderRepository) fanoutLocked() ([]repository.OrdersHandler, []entity.Order) {
	subs := make([]repository.OrdersHandler, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}

	return subs, r.snapshotLocked()
}

func deliverOrders(subs []repository.OrdersHandler, snapshot []entity.Order) {
	for _, sub := range subs {
		sub(snapshot)
	}
}
