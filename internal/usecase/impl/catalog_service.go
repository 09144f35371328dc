package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"homecafe/internal/domain/entity"
	domainerrors "homecafe/internal/domain/errors"
	"homecafe/internal/domain/repository"
	"homecafe/internal/errors"
	"homecafe/internal/usecase"

	"go.uber.org/fx"
)

type catalogService struct {
	catalogRepo repository.CatalogRepository
	logger      *slog.Logger

	mu     sync.RWMutex
	items  []entity.MenuItem
	config entity.MenuConfig

	unsubItems  repository.Unsubscribe
	unsubConfig repository.Unsubscribe
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	Logger      *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: params.CatalogRepo,
		logger:      params.Logger,
	}
}

// Start opens the live item and config subscriptions backing all reads.
func (s *catalogService) Start(ctx context.Context) error {
	unsubItems, err := s.catalogRepo.SubscribeItems(ctx,
		func(items []entity.MenuItem) {
			s.mu.Lock()
			s.items = items
			s.mu.Unlock()
		},
		func(err error) {
			s.logger.Error("catalog item subscription failed", slog.Any("error", err))
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to menu items")
	}
	s.unsubItems = unsubItems

	unsubConfig, err := s.catalogRepo.SubscribeConfig(ctx,
		func(config entity.MenuConfig) {
			s.mu.Lock()
			s.config = config
			s.mu.Unlock()
		},
		func(err error) {
			s.logger.Error("menu config subscription failed", slog.Any("error", err))
		},
	)
	if err != nil {
		unsubItems()

		return errors.Wrap(err, "failed to subscribe to menu config")
	}
	s.unsubConfig = unsubConfig

	return nil
}

// Stop releases the live subscriptions.
func (s *catalogService) Stop() {
	if s.unsubItems != nil {
		s.unsubItems()
		s.unsubItems = nil
	}
	if s.unsubConfig != nil {
		s.unsubConfig()
		s.unsubConfig = nil
	}
}

// Items returns the current item snapshot.
func (s *catalogService) Items() []entity.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.MenuItem, len(s.items))
	copy(items, s.items)

	return items
}

// Config returns the current config snapshot.
func (s *catalogService) Config() entity.MenuConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Menu assembles the guest-facing menu view from the current snapshots.
func (s *catalogService) Menu() usecase.MenuView {
	items := s.Items()
	config := s.Config()

	active := entity.ActiveItems(items)

	view := usecase.MenuView{
		Coffee:     entity.ItemsInCategory(active, entity.CategoryCoffee),
		Signature:  entity.ItemsInCategory(active, entity.CategorySignature),
		HeroTitle:  config.DisplayHeroTitle(),
		HeroBody:   config.DisplayHeroBody(),
		MenuTitle:  config.DisplayMenuTitle(),
		MenuBody:   config.DisplayMenuBody(),
		Sweeteners: config.Sweeteners,
		Milks:      config.Milks,
	}

	// Weak references: dangling or deactivated highlight ids render as absent
	if item, ok := entity.ResolveHighlight(active, config.HeroHighlightPrimaryID); ok {
		view.HeroHighlightPrimary = &item
	}
	if item, ok := entity.ResolveHighlight(active, config.HeroHighlightSecondaryID); ok {
		view.HeroHighlightSecondary = &item
	}

	return view
}

// CreateItem validates and persists a new menu item. Without an explicit
// sort key the item lands at the end of its category.
func (s *catalogService) CreateItem(ctx context.Context, input usecase.CreateMenuItemInput) (string, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", domainerrors.ErrItemTitleRequired
	}
	if !input.Category.Valid() {
		return "", domainerrors.ErrInvalidCategory.WithDetails(string(input.Category))
	}

	sortOrder := entity.NextSortOrder(s.Items(), input.Category)
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}

	item := entity.MenuItem{
		Title:          strings.TrimSpace(input.Title),
		Category:       input.Category,
		Options:        input.Options,
		ComingSoon:     input.ComingSoon,
		IsActive:       input.IsActive,
		SortOrder:      sortOrder,
		Description:    input.Description,
		AllowMilk:      input.AllowMilk,
		AllowSweetener: input.AllowSweetener,
	}
	if item.Options == nil {
		item.Options = []string{}
	}

	id, err := s.catalogRepo.CreateItem(ctx, item)
	if err != nil {
		s.logger.Error("failed to create menu item",
			slog.String("title", item.Title),
			slog.Any("error", err),
		)

		return "", domainerrors.ErrCatalogWriteFailed.WithDetails(err.Error())
	}

	return id, nil
}

// UpdateItem applies a partial merge to an existing item.
func (s *catalogService) UpdateItem(ctx context.Context, id string, patch repository.MenuItemPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domainerrors.ErrItemTitleRequired
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return domainerrors.ErrInvalidCategory.WithDetails(string(*patch.Category))
	}

	if err := s.catalogRepo.UpdateItem(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}
		s.logger.Error("failed to update menu item",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return domainerrors.ErrCatalogWriteFailed.WithDetails(err.Error())
	}

	return nil
}

// DeleteItem removes the item permanently.
func (s *catalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.catalogRepo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}
		s.logger.Error("failed to delete menu item",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return domainerrors.ErrCatalogWriteFailed.WithDetails(err.Error())
	}

	return nil
}

// SaveConfig merges a partial update into the singleton config document.
func (s *catalogService) SaveConfig(ctx context.Context, patch repository.MenuConfigPatch) error {
	if err := s.catalogRepo.SaveConfig(ctx, patch); err != nil {
		s.logger.Error("failed to save menu config", slog.Any("error", err))

		return domainerrors.ErrCatalogWriteFailed.WithDetails(err.Error())
	}

	return nil
}

// ReorderCategory renumbers a category to match the given id order. Sort keys
// are assigned in spaced steps so a later insert never forces a renumber.
// Each item gets its own update with no rollback: on partial failure the
// successful writes stay in place and the store's next snapshot shows the
// half-applied order, which the operator can retry from.
func (s *catalogService) ReorderCategory(ctx context.Context, category entity.MenuCategory, orderedIDs []string) error {
	if !category.Valid() {
		return domainerrors.ErrInvalidCategory.WithDetails(string(category))
	}

	var failures []error
	for index, id := range orderedIDs {
		sortOrder := entity.SortOrderForIndex(index)
		patch := repository.MenuItemPatch{SortOrder: &sortOrder}

		if err := s.catalogRepo.UpdateItem(ctx, id, patch); err != nil {
			s.logger.Error("failed to reorder menu item",
				slog.String("id", id),
				slog.Int("sortOrder", sortOrder),
				slog.Any("error", err),
			)
			failures = append(failures, errors.Wrapf(err, "item %s", id))
		}
	}

	if len(failures) > 0 {
		return domainerrors.ErrReorderFailed.WithDetails(errors.Join(failures...).Error())
	}

	return nil
}

// SubscribeItems delivers a full item snapshot on every catalog change.
func (s *catalogService) SubscribeItems(ctx context.Context, onItems repository.ItemsHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	return s.catalogRepo.SubscribeItems(ctx, onItems, onError)
}

// SubscribeConfig delivers a full config snapshot on every config change.
func (s *catalogService) SubscribeConfig(ctx context.Context, onConfig repository.ConfigHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	return s.catalogRepo.SubscribeConfig(ctx, onConfig, onError)
}
