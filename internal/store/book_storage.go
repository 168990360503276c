package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	tableItems   = "items"
	tableStashes = "stashes"
	tableKV      = "kv"
	tableAssets  = "assets"

	keyMeta = "meta"
)

type bookStorage struct {
	*DB
	bookID string
}

// NewBookStorage returns the storage of one book.
func NewBookStorage(db *DB, bookID string) (BookStorage, error) {
	if bookID == "" {
		return nil, ErrEmptyBookID
	}
	return &bookStorage{DB: db, bookID: bookID}, nil
}

func (b *bookStorage) BookID() string {
	return b.bookID
}

func (b *bookStorage) Items(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.builder.
		Select("payload").
		From(tableItems).
		Where(sq.Eq{"book_id": b.bookID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	rows, err := b.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "bookStorage.Items").Str("book_id", b.bookID).Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}

		item, decodeErr := decodeItem(payload)
		if decodeErr != nil {
			log.Err(decodeErr).Str("func", "bookStorage.Items").Str("book_id", b.bookID).Msg("corrupted item payload")
			return nil, decodeErr
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

func (b *bookStorage) Meta(ctx context.Context) (models.Meta, error) {
	meta := models.Meta{}
	if _, err := b.GetValue(ctx, keyMeta, &meta); err != nil {
		return nil, err
	}
	if meta == nil {
		meta = models.Meta{}
	}
	return meta, nil
}

func (b *bookStorage) Stashes(ctx context.Context) ([]models.Stash, error) {
	query, args, err := b.builder.
		Select("seq", "payload", "overlap", "created_at").
		From(tableStashes).
		Where(sq.Eq{"book_id": b.bookID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stashes query: %w", err)
	}

	rows, err := b.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bookStorage.Stashes").Str("book_id", b.bookID).Msg("failed to query stashes")
		return nil, fmt.Errorf("failed to query stashes: %w", err)
	}
	defer rows.Close()

	stashes := make([]models.Stash, 0)
	for rows.Next() {
		var (
			stash   models.Stash
			payload string
		)
		if err = rows.Scan(&stash.ID, &payload, &stash.Overlap, &stash.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stash row: %w", err)
		}
		if err = decodeJSON(payload, &stash.Action); err != nil {
			return nil, fmt.Errorf("corrupted stash %d: %w", stash.ID, err)
		}
		stashes = append(stashes, stash)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stash rows: %w", err)
	}

	return stashes, nil
}

func (b *bookStorage) PendingAssets(ctx context.Context) ([]models.AssetUpload, error) {
	query, args, err := b.builder.
		Select("path", "name", "mime_type", "data").
		From(tableAssets).
		Where(sq.Eq{"book_id": b.bookID}).
		OrderBy("path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build assets query: %w", err)
	}

	rows, err := b.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending assets: %w", err)
	}
	defer rows.Close()

	uploads := make([]models.AssetUpload, 0)
	for rows.Next() {
		var up models.AssetUpload
		if err = rows.Scan(&up.Path, &up.File.Name, &up.File.MIMEType, &up.File.Data); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		uploads = append(uploads, up)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	return uploads, nil
}

func (b *bookStorage) PendingAsset(ctx context.Context, path string) (models.File, bool, error) {
	query, args, err := b.builder.
		Select("name", "mime_type", "data").
		From(tableAssets).
		Where(sq.Eq{"book_id": b.bookID, "path": path}).
		ToSql()
	if err != nil {
		return models.File{}, false, fmt.Errorf("build asset query: %w", err)
	}

	var f models.File
	err = b.QueryRowContext(ctx, query, args...).Scan(&f.Name, &f.MIMEType, &f.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, false, nil
	}
	if err != nil {
		return models.File{}, false, fmt.Errorf("failed to query pending asset: %w", err)
	}

	return f, true, nil
}

func (b *bookStorage) GetValue(ctx context.Context, key string, dst any) (bool, error) {
	query, args, err := b.builder.
		Select("value").
		From(tableKV).
		Where(sq.Eq{"book_id": b.bookID, "key": key}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build value query: %w", err)
	}

	var raw string
	err = b.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bookStorage.GetValue").Str("key", key).Msg("failed to read value")
		return false, fmt.Errorf("failed to read value %q: %w", key, err)
	}

	if err = decodeJSON(raw, dst); err != nil {
		return false, fmt.Errorf("corrupted value %q: %w", key, err)
	}
	return true, nil
}

func (b *bookStorage) SetValue(ctx context.Context, key string, v any) error {
	return b.inTx(ctx, func(tx *sql.Tx) error {
		return b.putValue(ctx, tx, key, v)
	})
}

func (b *bookStorage) Commit(ctx context.Context, m Mutation) ([]models.Stash, error) {
	var appended []models.Stash

	err := b.inTx(ctx, func(tx *sql.Tx) error {
		appended = appended[:0]

		if err := b.writeItems(ctx, tx, m.ResetItems, m.Upserts); err != nil {
			return err
		}

		if m.Meta != nil {
			if err := b.putValue(ctx, tx, keyMeta, m.Meta); err != nil {
				return err
			}
		}

		if m.ClearStashes {
			if err := b.exec(ctx, tx, b.builder.Delete(tableStashes).Where(sq.Eq{"book_id": b.bookID})); err != nil {
				return fmt.Errorf("clear stashes: %w", err)
			}
		} else if len(m.DeleteStashes) > 0 {
			if err := b.exec(ctx, tx, b.builder.Delete(tableStashes).Where(sq.Eq{"book_id": b.bookID, "seq": m.DeleteStashes})); err != nil {
				return fmt.Errorf("delete stashes: %w", err)
			}
		}

		for _, stash := range m.AppendStashes {
			saved, err := b.appendStash(ctx, tx, stash)
			if err != nil {
				return err
			}
			appended = append(appended, saved)
		}

		if m.ClearAssets {
			if err := b.exec(ctx, tx, b.builder.Delete(tableAssets).Where(sq.Eq{"book_id": b.bookID})); err != nil {
				return fmt.Errorf("clear assets: %w", err)
			}
		} else if len(m.DeleteAssets) > 0 {
			if err := b.exec(ctx, tx, b.builder.Delete(tableAssets).Where(sq.Eq{"book_id": b.bookID, "path": m.DeleteAssets})); err != nil {
				return fmt.Errorf("delete assets: %w", err)
			}
		}

		for _, up := range m.AddAssets {
			data := up.File.Data
			if data == nil {
				// an empty attachment, the column is NOT NULL
				data = []byte{}
			}
			insert := b.builder.
				Insert(tableAssets).
				Columns("book_id", "path", "name", "mime_type", "data").
				Values(b.bookID, up.Path, up.File.Name, up.File.MIMEType, data).
				Suffix("ON CONFLICT (book_id, path) DO UPDATE SET name = excluded.name, mime_type = excluded.mime_type, data = excluded.data")
			if err := b.exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("save asset %s: %w", up.Path, err)
			}
		}

		for key, v := range m.Values {
			if err := b.putValue(ctx, tx, key, v); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "bookStorage.Commit").
			Str("book_id", b.bookID).
			Msg("failed to commit book mutation")
		return nil, err
	}

	return appended, nil
}

func (b *bookStorage) DangerousClearAll(ctx context.Context) error {
	return b.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{tableItems, tableStashes, tableKV, tableAssets} {
			if err := b.exec(ctx, tx, b.builder.Delete(table).Where(sq.Eq{"book_id": b.bookID})); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (b *bookStorage) writeItems(ctx context.Context, tx *sql.Tx, reset bool, upserts []models.Item) error {
	if reset {
		if err := b.exec(ctx, tx, b.builder.Delete(tableItems).Where(sq.Eq{"book_id": b.bookID})); err != nil {
			return fmt.Errorf("reset items: %w", err)
		}
	}
	if len(upserts) == 0 {
		return nil
	}

	query, args, err := b.builder.
		Select("COALESCE(MAX(position), -1)").
		From(tableItems).
		Where(sq.Eq{"book_id": b.bookID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build position query: %w", err)
	}

	var last int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return fmt.Errorf("read last position: %w", err)
	}

	for i, item := range upserts {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode item %s: %w", item.ID(), err)
		}

		insert := b.builder.
			Insert(tableItems).
			Columns("book_id", "item_id", "position", "update_at", "deleted", "payload").
			Values(b.bookID, item.ID(), last+1+int64(i), item.UpdateAt(), item.IsTombstone(), string(payload)).
			Suffix("ON CONFLICT (book_id, item_id) DO UPDATE SET update_at = excluded.update_at, deleted = excluded.deleted, payload = excluded.payload")
		if err = b.exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("save item %s: %w", item.ID(), err)
		}
	}

	return nil
}

func (b *bookStorage) appendStash(ctx context.Context, tx *sql.Tx, stash models.Stash) (models.Stash, error) {
	payload, err := json.Marshal(stash.Action)
	if err != nil {
		return models.Stash{}, fmt.Errorf("encode stash: %w", err)
	}
	if stash.CreatedAt.IsZero() {
		stash.CreatedAt = time.Now().UTC()
	}

	query, args, err := b.builder.
		Insert(tableStashes).
		Columns("book_id", "payload", "overlap", "created_at").
		Values(b.bookID, string(payload), stash.Overlap, stash.CreatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return models.Stash{}, fmt.Errorf("build stash insert: %w", err)
	}

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&stash.ID); err != nil {
		return models.Stash{}, fmt.Errorf("append stash: %w", err)
	}
	return stash, nil
}

func (b *bookStorage) putValue(ctx context.Context, tx *sql.Tx, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value %q: %w", key, err)
	}

	insert := b.builder.
		Insert(tableKV).
		Columns("book_id", "key", "value").
		Values(b.bookID, key, string(raw)).
		Suffix("ON CONFLICT (book_id, key) DO UPDATE SET value = excluded.value")
	if err = b.exec(ctx, tx, insert); err != nil {
		return fmt.Errorf("save value %q: %w", key, err)
	}
	return nil
}

func (b *bookStorage) exec(ctx context.Context, tx *sql.Tx, stmt sq.Sqlizer) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// decodeItem keeps numbers as json.Number so int64 timestamps survive.
func decodeItem(payload string) (models.Item, error) {
	var item models.Item
	if err := decodeJSON(payload, &item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}

func decodeJSON(raw string, dst any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	return dec.Decode(dst)
}
