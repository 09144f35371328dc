// Package persistence selects the document-store backend from
// configuration.
package persistence

import (
	"context"
	"log/slog"

	"homecafe/config"
	"homecafe/internal/domain/repository"
	fsrepo "homecafe/internal/infra/persistence/firestore"
	"homecafe/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RepositoriesParams holds dependencies for the store provider, injected by Fx.
type RepositoriesParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Repositories bundles the catalog and order repositories built on the same
// backend.
type Repositories struct {
	fx.Out

	Catalog repository.CatalogRepository
	Orders  repository.OrderRepository
}

// NewRepositories creates the repositories for the configured backend.
func NewRepositories(params RepositoriesParams) (Repositories, error) {
	switch params.Config.Store.Backend {
	case "memory":
		params.Logger.Info("Using in-memory document store")

		return Repositories{
			Catalog: memory.NewCatalogRepository(params.Logger),
			Orders:  memory.NewOrderRepository(params.Logger),
		}, nil

	case "firestore":
		cfg := params.Config.Store.Firestore
		if cfg == nil {
			return Repositories{}, errors.New("store.firestore config is required for the firestore backend")
		}

		client, err := fsrepo.NewClient(params.Ctx, cfg)
		if err != nil {
			return Repositories{}, errors.Wrap(err, "failed to create Firestore client")
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return errors.WithStack(client.Close())
			},
		})

		params.Logger.Info("Using Firestore document store",
			slog.String("project_id", cfg.ProjectID),
		)

		return Repositories{
			Catalog: fsrepo.NewCatalogRepository(client, params.Logger),
			Orders:  fsrepo.NewOrderRepository(client, params.Logger),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown store backend: %s", params.Config.Store.Backend)
	}
}
