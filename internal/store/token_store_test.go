package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// plainSealer stores JSON as is; sealing itself is covered in crypto.
type plainSealer struct{}

func (plainSealer) Seal(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func (plainSealer) Open(blob string, target any) error {
	return json.Unmarshal([]byte(blob), target)
}

func newTestTokenStore(t *testing.T, now time.Time) *tokenStore {
	t.Helper()

	ts := NewTokenStore(newTestDB(t), plainSealer{}).(*tokenStore)
	ts.now = func() time.Time { return now }
	return ts
}

func TestTokenStore_GetEmpty(t *testing.T) {
	ts := newTestTokenStore(t, time.Now())

	_, err := ts.Get(context.Background())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTokenStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	ts := newTestTokenStore(t, time.Now())

	creds := models.Credentials{Backend: models.BackendWebDAV, Endpoint: "https://dav.example.com", Username: "u", Secret: "p"}
	require.NoError(t, ts.Set(ctx, creds))

	got, err := ts.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	// second Set overwrites the first
	creds.Secret = "p2"
	require.NoError(t, ts.Set(ctx, creds))
	got, err = ts.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p2", got.Secret)

	require.NoError(t, ts.Clear(ctx))
	require.NoError(t, ts.Clear(ctx))
	_, err = ts.Get(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTokenStore_Refresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		stored     models.Credentials
		refresh    RefreshFunc
		wantSecret string
		wantErr    error
	}{
		{
			name:       "valid credentials are returned as is",
			stored:     models.Credentials{Backend: models.BackendGit, Secret: "t1", ExpiresAt: now.Add(time.Hour)},
			wantSecret: "t1",
		},
		{
			name:       "no expiry never expires",
			stored:     models.Credentials{Backend: models.BackendGit, Secret: "t1"},
			wantSecret: "t1",
		},
		{
			name:    "expired without refresher",
			stored:  models.Credentials{Backend: models.BackendGit, Secret: "t1", ExpiresAt: now.Add(-time.Minute)},
			wantErr: ErrSessionExpired,
		},
		{
			name:   "expired and renewed",
			stored: models.Credentials{Backend: models.BackendGit, Secret: "t1", ExpiresAt: now.Add(-time.Minute)},
			refresh: func(_ context.Context, expired models.Credentials) (models.Credentials, error) {
				expired.Secret = "t2"
				expired.ExpiresAt = now.Add(time.Hour)
				return expired, nil
			},
			wantSecret: "t2",
		},
		{
			name:   "refresher fails",
			stored: models.Credentials{Backend: models.BackendGit, Secret: "t1", ExpiresAt: now.Add(-time.Minute)},
			refresh: func(context.Context, models.Credentials) (models.Credentials, error) {
				return models.Credentials{}, errors.New("revoked")
			},
			wantErr: ErrSessionExpired,
		},
		{
			name:   "refresher returns expired credentials",
			stored: models.Credentials{Backend: models.BackendGit, Secret: "t1", ExpiresAt: now.Add(-time.Minute)},
			refresh: func(_ context.Context, expired models.Credentials) (models.Credentials, error) {
				return expired, nil
			},
			wantErr: ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ts := newTestTokenStore(t, now)
			require.NoError(t, ts.Set(ctx, tt.stored))

			got, err := ts.Refresh(ctx, tt.refresh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecret, got.Secret)

			stored, err := ts.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecret, stored.Secret)
		})
	}
}
