package memory

import (
	"context"
	"testing"
	"time"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateOrder_AssignsIDAndTimestamp(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	ctx := context.Background()

	before := time.Now()
	id, err := repo.CreateOrder(ctx, entity.Order{
		Drink:        "Latte",
		SummaryLines: []string{"Latte • Hot • 2 shots"},
		Status:       entity.StatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var got []entity.Order
	unsub, err := repo.SubscribeOrders(ctx, func(orders []entity.Order) {
		got = orders
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.False(t, got[0].CreatedAt.Before(before))
}

func TestOrderRepository_SnapshotNewestFirst(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	ctx := context.Background()

	_, err := repo.CreateOrder(ctx, entity.Order{Drink: "Latte", Status: entity.StatusPending})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = repo.CreateOrder(ctx, entity.Order{Drink: "Mocha", Status: entity.StatusPending})
	require.NoError(t, err)

	var got []entity.Order
	unsub, err := repo.SubscribeOrders(ctx, func(orders []entity.Order) {
		got = orders
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	require.Len(t, got, 2)
	assert.Equal(t, "Mocha", got[0].Drink)
	assert.Equal(t, "Latte", got[1].Drink)
}

func TestOrderRepository_SetStatus_LastWriteWins(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, entity.Order{Drink: "Latte", Status: entity.StatusPending})
	require.NoError(t, err)

	var got []entity.Order
	unsub, err := repo.SubscribeOrders(ctx, func(orders []entity.Order) {
		got = orders
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	// Transitions are unguarded: any status can overwrite any other
	require.NoError(t, repo.SetStatus(ctx, id, entity.StatusServed))
	require.NoError(t, repo.SetStatus(ctx, id, entity.StatusPending))

	require.Len(t, got, 1)
	assert.Equal(t, entity.StatusPending, got[0].Status)
}

func TestOrderRepository_SetStatus_NotFound(t *testing.T) {
	repo := NewOrderRepository(testLogger())

	err := repo.SetStatus(context.Background(), "missing", entity.StatusServed)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_ClosedOrdersStayInSnapshot(t *testing.T) {
	repo := NewOrderRepository(testLogger())
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, entity.Order{Drink: "Latte", Status: entity.StatusPending})
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, id, entity.StatusCancelled))

	var got []entity.Order
	unsub, err := repo.SubscribeOrders(ctx, func(orders []entity.Order) {
		got = orders
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	// Cancelled orders are dimmed by the presentation, never dropped
	require.Len(t, got, 1)
	assert.Equal(t, entity.StatusCancelled, got[0].Status)
}
