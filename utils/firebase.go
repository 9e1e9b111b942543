// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"calmwave/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the Firebase services used by the backend.
type FirebaseClients struct {
	Auth      *auth.Client
	Messaging *messaging.Client
}

// FirebaseInit initializes the Firebase App with the service account from configuration.
func FirebaseInit(ctx context.Context) (*FirebaseClients, error) {
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentials)
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: config.AppConfig.FirebaseBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &FirebaseClients{Auth: authClient, Messaging: msgClient}, nil
}
