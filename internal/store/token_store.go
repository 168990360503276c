package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-sync/internal/crypto"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	tableSessions      = "sessions"
	defaultSessionName = "default"
)

type tokenStore struct {
	*DB
	sealer crypto.Sealer
	name   string
	now    func() time.Time
}

// NewTokenStore returns a TokenStore that keeps the credentials sealed in the
// sessions table.
func NewTokenStore(db *DB, sealer crypto.Sealer) TokenStore {
	return &tokenStore{
		DB:     db,
		sealer: sealer,
		name:   defaultSessionName,
		now:    time.Now,
	}
}

func (t *tokenStore) Get(ctx context.Context) (models.Credentials, error) {
	query, args, err := t.builder.
		Select("sealed").
		From(tableSessions).
		Where(sq.Eq{"name": t.name}).
		ToSql()
	if err != nil {
		return models.Credentials{}, fmt.Errorf("build session query: %w", err)
	}

	var sealed string
	err = t.QueryRowContext(ctx, query, args...).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credentials{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Credentials{}, fmt.Errorf("failed to read session: %w", err)
	}

	var creds models.Credentials
	if err = t.sealer.Open(sealed, &creds); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenStore.Get").Msg("failed to open stored session")
		return models.Credentials{}, fmt.Errorf("failed to open session: %w", err)
	}
	return creds, nil
}

func (t *tokenStore) Set(ctx context.Context, creds models.Credentials) error {
	sealed, err := t.sealer.Seal(creds)
	if err != nil {
		return fmt.Errorf("failed to seal session: %w", err)
	}

	return t.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := t.builder.
			Insert(tableSessions).
			Columns("name", "sealed", "updated_at").
			Values(t.name, sealed, t.now().UTC()).
			Suffix("ON CONFLICT (name) DO UPDATE SET sealed = excluded.sealed, updated_at = excluded.updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build session insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

func (t *tokenStore) Clear(ctx context.Context) error {
	query, args, err := t.builder.
		Delete(tableSessions).
		Where(sq.Eq{"name": t.name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build session delete: %w", err)
	}
	if _, err = t.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (t *tokenStore) Refresh(ctx context.Context, refresh RefreshFunc) (models.Credentials, error) {
	log := logger.FromContext(ctx)

	creds, err := t.Get(ctx)
	if err != nil {
		return models.Credentials{}, err
	}
	if !creds.Expired(t.now()) {
		return creds, nil
	}
	if refresh == nil {
		return models.Credentials{}, ErrSessionExpired
	}

	renewed, err := refresh(ctx, creds)
	if err != nil {
		log.Err(err).Str("func", "tokenStore.Refresh").Str("backend", creds.Backend).Msg("session refresh failed")
		return models.Credentials{}, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	if renewed.Expired(t.now()) {
		return models.Credentials{}, ErrSessionExpired
	}

	if err = t.Set(ctx, renewed); err != nil {
		return models.Credentials{}, err
	}
	log.Info().Str("func", "tokenStore.Refresh").Str("backend", renewed.Backend).Msg("session refreshed")
	return renewed, nil
}
