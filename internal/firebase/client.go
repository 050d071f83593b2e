// Package firebase is the hosted backend: Firestore for records, Firebase
// Auth for credentials, and a Cloud Storage bucket for project documents.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrInvalidCredential is returned by VerifyPassword for a wrong password
// and for an unknown account alike; the distinction is never surfaced.
var ErrInvalidCredential = fmt.Errorf("invalid email or password")

// Client bundles the Firebase services the application talks to.
type Client struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
	Bucket    *gcs.BucketHandle

	webAPIKey string
}

// Init builds the client from FIREBASE_CREDENTIALS_PATH (local file) or
// FIREBASE_CREDENTIALS_JSON (inline, for deploys).
func Init(ctx context.Context) (*Client, error) {
	cfg := &firebase.Config{
		StorageBucket: os.Getenv("FIREBASE_STORAGE_BUCKET"),
	}

	var opts []option.ClientOption
	if path := os.Getenv("FIREBASE_CREDENTIALS_PATH"); path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("credentials file does not exist: %s", path)
		}
		opts = append(opts, option.WithCredentialsFile(path))
	} else if raw := os.Getenv("FIREBASE_CREDENTIALS_JSON"); raw != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(raw)))
	} else {
		return nil, fmt.Errorf("neither FIREBASE_CREDENTIALS_PATH nor FIREBASE_CREDENTIALS_JSON is set")
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore: %w", err)
	}

	client := &Client{
		App:       app,
		Auth:      authClient,
		Firestore: fsClient,
		webAPIKey: os.Getenv("FIREBASE_WEB_API_KEY"),
	}

	// The bucket is optional: without it project-file upload is rejected
	// at request time, everything else keeps working.
	if cfg.StorageBucket != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("initializing storage: %w", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("resolving storage bucket: %w", err)
		}
		client.Bucket = bucket
	}

	return client, nil
}

// Close releases the Firestore connection.
func (c *Client) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}

// CreateAccount registers a credential with Firebase Auth and returns its UID.
func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)

	rec, err := c.Auth.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("creating auth account: %w", err)
	}
	return rec.UID, nil
}

// DeleteAccount removes a credential from Firebase Auth.
func (c *Client) DeleteAccount(ctx context.Context, uid string) error {
	if err := c.Auth.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("deleting auth account: %w", err)
	}
	return nil
}

// VerifyPassword checks email and password against the Firebase
// Authentication REST API and returns the account UID.
func (c *Client) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	if c.webAPIKey == "" {
		return "", fmt.Errorf("FIREBASE_WEB_API_KEY is not set")
	}

	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", c.webAPIKey)

	reqBody, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", fmt.Errorf("encoding sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("building sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			switch errResp.Error.Message {
			case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
				return "", ErrInvalidCredential
			case "USER_DISABLED":
				return "", fmt.Errorf("account has been disabled")
			default:
				return "", fmt.Errorf("identity toolkit error: %s", errResp.Error.Message)
			}
		}
		return "", fmt.Errorf("password verification failed (status %d)", resp.StatusCode)
	}

	var authResp struct {
		LocalID string `json:"localId"`
	}
	if err := json.Unmarshal(body, &authResp); err != nil {
		return "", fmt.Errorf("parsing sign-in response: %w", err)
	}

	return authResp.LocalID, nil
}
