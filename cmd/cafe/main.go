package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"homecafe/config"
	"homecafe/internal/delivery"
	"homecafe/internal/delivery/http"
	"homecafe/internal/delivery/http/middleware"
	"homecafe/internal/delivery/http/router/handler"
	"homecafe/internal/delivery/ws"
	"homecafe/internal/domain/service"
	logs "homecafe/internal/infra/log"
	"homecafe/internal/infra/notification"
	"homecafe/internal/infra/persistence"
	"homecafe/internal/infra/pubsub"
	"homecafe/internal/infra/qrcode"
	"homecafe/internal/usecase"
	"homecafe/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startCatalog,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewRepositories,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			pubsub.NewEventPublisher,
			newFirebaseService,
			newQRCodeService,
		),
	)
}

// newFirebaseService creates a Firebase messaging service for staff
// notifications when both the tokens and the credentials are configured
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Notifications == nil || len(cfg.Notifications.StaffTokens) == 0 {
		return nil, nil // staff notifications are optional
	}
	if cfg.Store.Firestore == nil || cfg.Store.Firestore.CredentialsPath == "" {
		return nil, nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Store.Firestore.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", fmt.Sprintf("http://localhost:%d/api/menu", cfg.HTTP.Port))
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewOrderSessionService,
			impl.NewQueueService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMenuHandler,
			handler.NewAdminHandler,
			handler.NewSessionHandler,
			handler.NewQueueHandler,
			ws.NewHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startCatalog opens the live catalog view with the application lifecycle
// and tears the sessions down with it.
func startCatalog(lc fx.Lifecycle, catalogUC usecase.CatalogUsecase, sessionUC usecase.OrderSessionUsecase) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return catalogUC.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			sessionUC.Close()
			catalogUC.Stop()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
