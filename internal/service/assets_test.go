package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/models"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n0000")

func TestTransformAssets_File(t *testing.T) {
	ids := &fixedIDs{ids: []string{"ab12cd34"}}
	action := update("a", 1, "receipt", models.File{Name: "scan.png", MIMEType: "image/png", Data: pngBytes})

	out, uploads, err := TransformAssets([]models.Action{action}, ids)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "assets/ab12cd34-scan.png", out[0].Value["receipt"])
	require.Len(t, uploads, 1)
	assert.Equal(t, "assets/ab12cd34-scan.png", uploads[0].Path)
	assert.Equal(t, pngBytes, uploads[0].File.Data)

	// the caller's action is untouched
	assert.IsType(t, models.File{}, action.Value["receipt"])
}

func TestTransformAssets_EmptyFile(t *testing.T) {
	ctx := context.Background()
	ids := &fixedIDs{ids: []string{"a1b2c3d4"}}

	out, uploads, err := TransformAssets([]models.Action{update("a", 1, "note", models.File{Name: "empty.txt"})}, ids)
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "assets/a1b2c3d4-empty.txt", out[0].Value["note"])
	assert.NotNil(t, uploads[0].File.Data)
	assert.Empty(t, uploads[0].File.Data)

	b := newTestBucket(t)
	_, err = b.Batch(ctx, out, false, uploads)
	require.NoError(t, err)

	f, ok, err := b.PendingAsset(ctx, "assets/a1b2c3d4-empty.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.Data)
}

func TestTransformAssets_DataURL(t *testing.T) {
	ids := &fixedIDs{ids: []string{"00000001"}}
	url := "data:image/png;name=my%20cat.png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	out, uploads, err := TransformAssets([]models.Action{update("a", 1, "photo", url)}, ids)
	require.NoError(t, err)

	assert.Equal(t, "assets/00000001-my_cat.png", out[0].Value["photo"])
	require.Len(t, uploads, 1)
	assert.Equal(t, "image/png", uploads[0].File.MIMEType)
	assert.Equal(t, pngBytes, uploads[0].File.Data)
}

func TestTransformAssets_Nested(t *testing.T) {
	ids := &fixedIDs{ids: []string{"11111111", "22222222", "33333333"}}
	actions := []models.Action{
		update("a", 1, "attachments", []any{
			&models.File{Name: "a.pdf", Data: []byte("%PDF-1.4")},
			map[string]any{"thumb": models.File{Data: pngBytes}},
			"plain text",
		}),
		{Type: models.ActionMeta, Meta: models.Meta{"logo": models.File{Name: "logo", MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}}},
		remove("b", 2),
	}

	out, uploads, err := TransformAssets(actions, ids)
	require.NoError(t, err)
	require.Len(t, uploads, 3)

	list := out[0].Value["attachments"].([]any)
	assert.Equal(t, "assets/11111111-a.pdf", list[0])
	assert.Equal(t, map[string]any{"thumb": "assets/22222222-file.png"}, list[1])
	assert.Equal(t, "plain text", list[2])
	assert.Equal(t, "assets/33333333-logo.jpg", out[1].Meta["logo"])
	assert.Equal(t, actions[2], out[2])

	assert.Equal(t, "application/pdf", uploads[0].File.MIMEType)
	assert.Equal(t, "image/png", uploads[1].File.MIMEType)
}

func TestTransformAssets_NoBinaries(t *testing.T) {
	actions := []models.Action{update("a", 1, "note", "data:text/plain,not base64")}

	out, uploads, err := TransformAssets(actions, &fixedIDs{ids: []string{"x"}})
	require.NoError(t, err)
	assert.Empty(t, uploads)
	assert.Equal(t, "data:text/plain,not base64", out[0].Value["note"])
}

func TestTransformAssets_BadPayload(t *testing.T) {
	actions := []models.Action{update("a", 1, "photo", "data:image/png;base64,!!!")}

	_, _, err := TransformAssets(actions, &fixedIDs{ids: []string{"x"}})
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestAssetName(t *testing.T) {
	tests := []struct {
		name, mime, want string
	}{
		{"photo.jpg", "image/jpeg", "photo.jpg"},
		{"../../etc/passwd", "", "passwd.bin"},
		{`C:\docs\bill 1.pdf`, "application/pdf", "bill_1.pdf"},
		{"", "image/png", "file.png"},
		{"notes", "text/plain; charset=utf-8", "notes.txt"},
		{"blob", "application/x-unknown-thing", "blob.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assetName(tt.name, tt.mime))
		})
	}
}

func TestReferencedAssets(t *testing.T) {
	items := []models.Item{
		entry("a", 1, "photo", "assets/1-a.png"),
		entry("b", 1, "list", []any{"assets/2-b.png", map[string]any{"deep": "assets/3-c.png"}}),
		entry("c", 1, "note", "assets are nice"),
	}
	meta := models.Meta{"logo": "assets/4-logo.png"}

	refs := ReferencedAssets(items, meta)

	assert.Len(t, refs, 4)
	for _, p := range []string{"assets/1-a.png", "assets/2-b.png", "assets/3-c.png", "assets/4-logo.png"} {
		assert.Contains(t, refs, p)
	}
}
