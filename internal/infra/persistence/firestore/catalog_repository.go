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

type catalogRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewCatalogRepository creates a Firestore-backed catalog repository.
func NewCatalogRepository(client *firestore.Client, logger *slog.Logger) repository.CatalogRepository {
	return &catalogRepository{
		client: client,
		logger: logger,
	}
}

// SubscribeItems streams full menu snapshots ordered by sortOrder. A single
// sort key keeps the query on Firestore's built-in index; grouping by
// category happens client-side.
func (r *catalogRepository) SubscribeItems(ctx context.Context, onItems repository.ItemsHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	query := r.client.Collection(menuItemsCollection).OrderBy("sortOrder", firestore.Asc)

	go func() {
		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				r.logger.Error("menu items subscription failed", slog.Any("error", err))
				// Fall back to an empty snapshot so views never keep
				// displaying stale data silently.
				onItems([]entity.MenuItem{})
				if onError != nil {
					onError(errors.Wrap(err, "menu items snapshot listener"))
				}

				return
			}

			items, err := decodeItems(snap)
			if err != nil {
				r.logger.Error("menu items snapshot decode failed", slog.Any("error", err))
				if onError != nil {
					onError(err)
				}

				continue
			}

			onItems(items)
		}
	}()

	return repository.Unsubscribe(cancel), nil
}

// SubscribeConfig streams full snapshots of the singleton config document.
// A missing document delivers the all-defaults config, so the very first
// read behaves like every later one.
func (r *catalogRepository) SubscribeConfig(ctx context.Context, onConfig repository.ConfigHandler, onError repository.ErrorHandler) (repository.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	docRef := r.client.Collection(menuConfigDocPath).Doc(menuConfigDocID)

	go func() {
		snapshots := docRef.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				r.logger.Error("menu config subscription failed", slog.Any("error", err))
				onConfig(model.MenuConfigModel{}.ToEntity())
				if onError != nil {
					onError(errors.Wrap(err, "menu config snapshot listener"))
				}

				return
			}

			var doc model.MenuConfigModel
			if snap.Exists() {
				if err := snap.DataTo(&doc); err != nil {
					r.logger.Error("menu config snapshot decode failed", slog.Any("error", err))
					if onError != nil {
						onError(errors.Wrap(err, "decode menu config"))
					}

					continue
				}
			}

			onConfig(doc.ToEntity())
		}
	}()

	return repository.Unsubscribe(cancel), nil
}

// CreateItem persists a new menu item and returns the store-assigned id.
func (r *catalogRepository) CreateItem(ctx context.Context, item entity.MenuItem) (string, error) {
	ref, _, err := r.client.Collection(menuItemsCollection).Add(ctx, model.NewMenuItemModel(item))
	if err != nil {
		return "", errors.Wrap(err, "failed to create menu item")
	}

	return ref.ID, nil
}

// UpdateItem applies a partial merge; untouched fields keep their values.
func (r *catalogRepository) UpdateItem(ctx context.Context, id string, patch repository.MenuItemPatch) error {
	updates := itemPatchUpdates(patch)
	if len(updates) == 0 {
		return nil
	}

	_, err := r.client.Collection(menuItemsCollection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return repository.ErrItemNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to update menu item")
	}

	return nil
}

// DeleteItem removes the item permanently. Open sessions keep their last
// snapshot until the deletion fans out through the next one.
func (r *catalogRepository) DeleteItem(ctx context.Context, id string) error {
	_, err := r.client.Collection(menuItemsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete menu item")
	}

	return nil
}

// SaveConfig merges the patch into the singleton config document, creating
// it on first write.
func (r *catalogRepository) SaveConfig(ctx context.Context, patch repository.MenuConfigPatch) error {
	data := configPatchData(patch)
	if len(data) == 0 {
		return nil
	}

	_, err := r.client.Collection(menuConfigDocPath).Doc(menuConfigDocID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return errors.Wrap(err, "failed to save menu config")
	}

	return nil
}

func decodeItems(snap *firestore.QuerySnapshot) ([]entity.MenuItem, error) {
	items := []entity.MenuItem{}
	for {
		doc, err := snap.Documents.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate menu items snapshot")
		}

		var data model.MenuItemModel
		if err := doc.DataTo(&data); err != nil {
			return nil, errors.Wrap(err, "decode menu item")
		}
		items = append(items, data.ToEntity(doc.Ref.ID))
	}

	return items, nil
}

func itemPatchUpdates(patch repository.MenuItemPatch) []firestore.Update {
	var updates []firestore.Update
	add := func(path string, value any) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Category != nil {
		add("category", string(*patch.Category))
	}
	if patch.Options != nil {
		add("options", *patch.Options)
	}
	if patch.ComingSoon != nil {
		add("comingSoon", *patch.ComingSoon)
	}
	if patch.IsActive != nil {
		add("isActive", *patch.IsActive)
	}
	if patch.SortOrder != nil {
		add("sortOrder", *patch.SortOrder)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.AllowMilk != nil {
		add("allowMilk", *patch.AllowMilk)
	}
	if patch.AllowSweetener != nil {
		add("allowSweetener", *patch.AllowSweetener)
	}

	return updates
}

func configPatchData(patch repository.MenuConfigPatch) map[string]any {
	data := map[string]any{}

	if patch.Sweeteners != nil {
		data["sweeteners"] = *patch.Sweeteners
	}
	if patch.Milks != nil {
		data["milks"] = *patch.Milks
	}
	if patch.HeroHighlightPrimaryID != nil {
		data["heroHighlightPrimaryId"] = nullable(*patch.HeroHighlightPrimaryID)
	}
	if patch.HeroHighlightSecondaryID != nil {
		data["heroHighlightSecondaryId"] = nullable(*patch.HeroHighlightSecondaryID)
	}
	if patch.HeroTitle != nil {
		data["heroTitle"] = *patch.HeroTitle
	}
	if patch.HeroBody != nil {
		data["heroBody"] = *patch.HeroBody
	}
	if patch.MenuTitle != nil {
		data["menuTitle"] = *patch.MenuTitle
	}
	if patch.MenuBody != nil {
		data["menuBody"] = *patch.MenuBody
	}

	return data
}

// nullable stores cleared highlight references as null rather than "".
func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}
