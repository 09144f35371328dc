package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCatalogRepository_SubscribeItems_InitialSnapshot(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	_, err := repo.CreateItem(ctx, entity.MenuItem{Title: "Latte", Category: entity.CategoryCoffee, SortOrder: 10})
	require.NoError(t, err)

	var snapshots [][]entity.MenuItem
	unsub, err := repo.SubscribeItems(ctx, func(items []entity.MenuItem) {
		snapshots = append(snapshots, items)
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	// The initial read arrives synchronously
	require.Len(t, snapshots, 1)
	require.Len(t, snapshots[0], 1)
	assert.Equal(t, "Latte", snapshots[0][0].Title)
}

func TestCatalogRepository_WriterObservesOwnWrites(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	var snapshots [][]entity.MenuItem
	unsub, err := repo.SubscribeItems(ctx, func(items []entity.MenuItem) {
		snapshots = append(snapshots, items)
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	id, err := repo.CreateItem(ctx, entity.MenuItem{Title: "Latte", Category: entity.CategoryCoffee, SortOrder: 10})
	require.NoError(t, err)

	// No local-echo path: the writer gets the same fan-out as everyone else
	require.Len(t, snapshots, 2)
	assert.Equal(t, id, snapshots[1][0].ID)
}

func TestCatalogRepository_SnapshotOrdering(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	_, err := repo.CreateItem(ctx, entity.MenuItem{Title: "Third", SortOrder: 30})
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, entity.MenuItem{Title: "First", SortOrder: 10})
	require.NoError(t, err)
	// Equal keys: arrival order breaks the tie
	_, err = repo.CreateItem(ctx, entity.MenuItem{Title: "SecondA", SortOrder: 20})
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, entity.MenuItem{Title: "SecondB", SortOrder: 20})
	require.NoError(t, err)

	var got []entity.MenuItem
	unsub, err := repo.SubscribeItems(ctx, func(items []entity.MenuItem) {
		got = items
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	titles := make([]string, 0, len(got))
	for _, item := range got {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"First", "SecondA", "SecondB", "Third"}, titles)
}

func TestCatalogRepository_UpdateItem_PartialMerge(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	id, err := repo.CreateItem(ctx, entity.MenuItem{
		Title:     "Latte",
		Category:  entity.CategoryCoffee,
		Options:   []string{"Hot", "Iced"},
		IsActive:  true,
		SortOrder: 10,
	})
	require.NoError(t, err)

	comingSoon := true
	require.NoError(t, repo.UpdateItem(ctx, id, repository.MenuItemPatch{ComingSoon: &comingSoon}))

	var got []entity.MenuItem
	unsub, err := repo.SubscribeItems(ctx, func(items []entity.MenuItem) {
		got = items
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	require.Len(t, got, 1)
	assert.True(t, got[0].ComingSoon)
	// Untouched fields survive the merge
	assert.Equal(t, "Latte", got[0].Title)
	assert.Equal(t, []string{"Hot", "Iced"}, got[0].Options)
	assert.True(t, got[0].IsActive)
}

func TestCatalogRepository_UpdateDelete_NotFound(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	title := "Latte"
	assert.ErrorIs(t, repo.UpdateItem(ctx, "missing", repository.MenuItemPatch{Title: &title}), repository.ErrItemNotFound)
	assert.ErrorIs(t, repo.DeleteItem(ctx, "missing"), repository.ErrItemNotFound)
}

func TestCatalogRepository_SaveConfig_MergeAndFanOut(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	var configs []entity.MenuConfig
	unsub, err := repo.SubscribeConfig(ctx, func(config entity.MenuConfig) {
		configs = append(configs, config)
	}, func(error) {})
	require.NoError(t, err)
	defer unsub()

	// Initial snapshot is the empty default
	require.Len(t, configs, 1)
	assert.Empty(t, configs[0].Sweeteners)

	sweeteners := []string{"Honey"}
	require.NoError(t, repo.SaveConfig(ctx, repository.MenuConfigPatch{Sweeteners: &sweeteners}))

	milks := []string{"Oat"}
	require.NoError(t, repo.SaveConfig(ctx, repository.MenuConfigPatch{Milks: &milks}))

	require.Len(t, configs, 3)
	// The second merge kept the first merge's field
	assert.Equal(t, []string{"Honey"}, configs[2].Sweeteners)
	assert.Equal(t, []string{"Oat"}, configs[2].Milks)
}

func TestCatalogRepository_Unsubscribe_StopsDelivery(t *testing.T) {
	repo := NewCatalogRepository(testLogger())
	ctx := context.Background()

	count := 0
	unsub, err := repo.SubscribeItems(ctx, func([]entity.MenuItem) {
		count++
	}, func(error) {})
	require.NoError(t, err)

	unsub()

	_, err = repo.CreateItem(ctx, entity.MenuItem{Title: "Latte"})
	require.NoError(t, err)

	assert.Equal(t, 1, count) // only the initial snapshot
}
