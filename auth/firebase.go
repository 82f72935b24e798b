package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Verifier wraps the Firebase Auth client used to verify login ID tokens.
// Constructed once in main and passed down; no package-level handles.
type Verifier struct {
	client    *fbauth.Client
	projectID string
}

// NewVerifier initializes Firebase from the credentials JSON in the
// environment.
func NewVerifier(ctx context.Context) (*Verifier, error) {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_JSON must be set")
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}
	return &Verifier{client: client, projectID: projectID}, nil
}

// Verify checks the ID token and returns the decoded token.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*fbauth.Token, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != v.projectID {
		return nil, fmt.Errorf("invalid token audience")
	}
	return token, nil
}
