// Package memory implements the document-store repositories in process
// memory, for single-process development and tests. Semantics mirror the
// Firestore adapter: full snapshots on every change, delivered to every
// subscriber including the writer, with no separate local-echo path.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"homecafe/internal/domain/entity"
	"homecafe/internal/domain/repository"

	"github.com/google/uuid"
)

type storedItem struct {
	item    entity.MenuItem
	arrival int // tie-break for equal sort orders
}

type catalogRepository struct {
	mu     sync.Mutex
	logger *slog.Logger

	items   map[string]*storedItem
	arrival int
	config  entity.MenuConfig

	itemSubs   map[int]repository.ItemsHandler
	configSubs map[int]repository.ConfigHandler
	nextSub    int
}

// NewCatalogRepository creates an empty in-memory catalog repository.
func NewCatalogRepository(logger *slog.Logger) repository.CatalogRepository {
	return &catalogRepository{
		logger:     logger,
		items:      make(map[string]*storedItem),
		config:     defaultConfig(),
		itemSubs:   make(map[int]repository.ItemsHandler),
		configSubs: make(map[int]repository.ConfigHandler),
	}
}

func defaultConfig() entity.MenuConfig {
	return entity.MenuConfig{
		Sweeteners: []string{},
		Milks:      []string{},
	}
}

// SubscribeItems registers the handler and synchronously delivers the
// current snapshot, mirroring the remote store's initial read.
func (r *catalogRepository) SubscribeItems(ctx context.Context, onItems repository.ItemsHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.itemSubs[id] = onItems
	snapshot := r.itemSnapshotLocked()
	r.mu.Unlock()

	onItems(snapshot)

	return func() {
		r.mu.Lock()
		delete(r.itemSubs, id)
		r.mu.Unlock()
	}, nil
}

// SubscribeConfig registers the handler and synchronously delivers the
// current config snapshot.
func (r *catalogRepository) SubscribeConfig(ctx context.Context, onConfig repository.ConfigHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.configSubs[id] = onConfig
	snapshot := r.config
	r.mu.Unlock()

	onConfig(snapshot)

	return func() {
		r.mu.Lock()
		delete(r.configSubs, id)
		r.mu.Unlock()
	}, nil
}

// CreateItem assigns an opaque id and fans the new snapshot out to every
// subscriber.
func (r *catalogRepository) CreateItem(ctx context.Context, item entity.MenuItem) (string, error) {
	r.mu.Lock()
	item.ID = uuid.New().String()
	if item.Options == nil {
		item.Options = []string{}
	}
	r.arrival++
	r.items[item.ID] = &storedItem{item: item, arrival: r.arrival}
	subs, snapshot := r.itemFanoutLocked()
	r.mu.Unlock()

	deliverItems(subs, snapshot)

	return item.ID, nil
}

// UpdateItem applies a partial merge; nil patch fields keep their values.
func (r *catalogRepository) UpdateItem(ctx context.Context, id string, patch repository.MenuItemPatch) error {
	r.mu.Lock()
	stored, ok := r.items[id]
	if !ok {
		r.mu.Unlock()

		return repository.ErrItemNotFound
	}
	applyItemPatch(&stored.item, patch)
	subs, snapshot := r.itemFanoutLocked()
	r.mu.Unlock()

	deliverItems(subs, snapshot)

	return nil
}

// DeleteItem removes the record; readers keep their last snapshot until
// this one fans out.
func (r *catalogRepository) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.items[id]; !ok {
		r.mu.Unlock()

		return repository.ErrItemNotFound
	}
	delete(r.items, id)
	subs, snapshot := r.itemFanoutLocked()
	r.mu.Unlock()

	deliverItems(subs, snapshot)

	return nil
}

// SaveConfig merges the patch into the singleton config.
func (r *catalogRepository) SaveConfig(ctx context.Context, patch repository.MenuConfigPatch) error {
	r.mu.Lock()
	applyConfigPatch(&r.config, patch)
	snapshot := r.config
	subs := make([]repository.ConfigHandler, 0, len(r.configSubs))
	for _, sub := range r.configSubs {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}

	return nil
}

// itemSnapshotLocked builds the full snapshot ordered by ascending
// sortOrder, ties broken by arrival order. Callers must hold the mutex.
func (r *catalogRepository) itemSnapshotLocked() []entity.MenuItem {
	stored := make([]*storedItem, 0, len(r.items))
	for _, s := range r.items {
		stored = append(stored, s)
	}
	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].item.SortOrder != stored[j].item.SortOrder {
			return stored[i].item.SortOrder < stored[j].item.SortOrder
		}

		return stored[i].arrival < stored[j].arrival
	})

	items := make([]entity.MenuItem, 0, len(stored))
	for _, s := range stored {
		items = append(items, s.item)
	}

	return items
}

func (r *catalogRepository) itemFanoutLocked() ([]repository.ItemsHandler, []entity.MenuItem) {
	subs := make([]repository.ItemsHandler, 0, len(r.itemSubs))
	for _, sub := range r.itemSubs {
		subs = append(subs, sub)
	}

	return subs, r.itemSnapshotLocked()
}

func deliverItems(subs []repository.ItemsHandler, snapshot []entity.MenuItem) {
	for _, sub := range subs {
		sub(snapshot)
	}
}

func applyItemPatch(item *entity.MenuItem, patch repository.MenuItemPatch) {
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Options != nil {
		item.Options = *patch.Options
	}
	if patch.ComingSoon != nil {
		item.ComingSoon = *patch.ComingSoon
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		item.SortOrder = *patch.SortOrder
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.AllowMilk != nil {
		item.AllowMilk = *patch.AllowMilk
	}
	if patch.AllowSweetener != nil {
		item.AllowSweetener = *patch.AllowSweetener
	}
}

func applyConfigPatch(cfg *entity.MenuConfig, patch repository.MenuConfigPatch) {
	if patch.Sweeteners != nil {
		cfg.Sweeteners = *patch.Sweeteners
	}
	if patch.Milks != nil {
		cfg.Milks = *patch.Milks
	}
	if patch.HeroHighlightPrimaryID != nil {
		cfg.HeroHighlightPrimaryID = *patch.HeroHighlightPrimaryID
	}
	if patch.HeroHighlightSecondaryID != nil {
		cfg.HeroHighlightSecondaryID = *patch.HeroHighlightSecondaryID
	}
	if patch.HeroTitle != nil {
		cfg.HeroTitle = *patch.HeroTitle
	}
	if patch.HeroBody != nil {
		cfg.HeroBody = *patch.HeroBody
	}
	if patch.MenuTitle != nil {
		cfg.MenuTitle = *patch.MenuTitle
	}
	if patch.MenuBody != nil {
		cfg.MenuBody = *patch.MenuBody
	}
}
