package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PushTokenProvider supplies the opaque device token sent to the push
// registration endpoint. The real mobile transport is out of scope; the
// terminal client synthesizes a stable per-install token instead.
type PushTokenProvider interface {
	DeviceToken() (string, error)
}

// DeviceTokenProvider keeps one uuid-derived token per storage root,
// generated on first use and reused afterwards.
type DeviceTokenProvider struct {
	Root string
}

func NewDeviceTokenProvider(root string) *DeviceTokenProvider {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot()
	}
	return &DeviceTokenProvider{Root: root}
}

type deviceTokenFile struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *DeviceTokenProvider) path() string {
	return filepath.Join(p.Root, "device_token.json")
}

func (p *DeviceTokenProvider) DeviceToken() (string, error) {
	if b, err := os.ReadFile(p.path()); err == nil {
		var f deviceTokenFile
		if err := json.Unmarshal(b, &f); err == nil && strings.TrimSpace(f.Token) != "" {
			return f.Token, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	token := "wva-term[" + uuid.NewString() + "]"
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return "", err
	}
	b, err := json.Marshal(deviceTokenFile{Token: token, CreatedAt: time.Now()})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p.path(), b, 0o600); err != nil {
		return "", err
	}
	return token, nil
}

// registerPushToken associates the device token with the freshly signed-in
// account. Callers treat any error as non-fatal.
func registerPushToken(ctx context.Context, client *APIClient, provider PushTokenProvider, authToken string) error {
	if provider == nil {
		return nil
	}
	token, err := provider.DeviceToken()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	return client.SetPushToken(ctx, authToken, token)
}
