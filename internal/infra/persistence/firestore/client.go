// Package firestore implements the document-store repositories on Google
// Cloud Firestore. Snapshot listeners give every session the same full-
// snapshot fan-out the contract requires; writers observe their own writes
// through the listener like everyone else.
package firestore

import (
	"context"

	"homecafe/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// Collection and document names backing the café.
const (
	menuItemsCollection = "menuItems"
	menuConfigDocPath   = "menuConfig"
	menuConfigDocID     = "default"
	ordersCollection    = "orders"
)

// NewClient creates a Firestore client through the Firebase app so the same
// service account credentials also serve messaging.
func NewClient(ctx context.Context, cfg *config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	return client, nil
}
