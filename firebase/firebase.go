package firebase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"unisale-backend/dtos"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// credentialOptions turns GOOGLE_APPLICATION_CREDENTIALS into client options.
// The value may hold the service account JSON itself or a path to it.
func credentialOptions(cred string) []option.ClientOption {
	if cred == "" {
		log.Println("Warning: GOOGLE_APPLICATION_CREDENTIALS not set, using default credentials")
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		log.Println("Using Firebase credentials from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	log.Println("Using Firebase credentials from file:", cred)
	return []option.ClientOption{option.WithCredentialsFile(cred)}
}

func Init(ctx context.Context, credentials, bucket string) (*firebase.App, error) {
	var conf *firebase.Config
	if bucket != "" {
		conf = &firebase.Config{StorageBucket: bucket}
	}

	app, err := firebase.NewApp(ctx, conf, credentialOptions(credentials)...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	log.Println("Firebase initialized successfully")
	return app, nil
}

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthVerifier checks Firebase ID tokens sent by the web client.
type AuthVerifier struct {
	client idTokenVerifier
}

func NewAuthVerifier(ctx context.Context, app *firebase.App) (*AuthVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %w", err)
	}
	return &AuthVerifier{client: client}, nil
}

func (v *AuthVerifier) VerifyToken(ctx context.Context, idToken string) (*dtos.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.UID == "" {
		return nil, errors.New("token has no uid")
	}

	email, _ := token.Claims["email"].(string)
	return &dtos.Identity{UID: token.UID, Email: email}, nil
}
