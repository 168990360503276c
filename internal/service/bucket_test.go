package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// ── Batch ────────────────────────────────────────────────────────────────────

func TestItemBucket_Batch(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)

	stashes, err := b.Batch(ctx, []models.Action{
		update("a", 1, "amount", 10),
		update("b", 1, "amount", 20),
		update("a", 2, "amount", 15),
		remove("b", 3),
	}, false, nil)
	require.NoError(t, err)
	require.Len(t, stashes, 4)
	for i := 1; i < len(stashes); i++ {
		assert.Greater(t, stashes[i].ID, stashes[i-1].ID)
	}

	items, err := b.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, itemIDs(items))
	assert.EqualValues(t, 15, mustInt(t, items[0]["amount"]))

	status, err := b.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatus{PendingStashes: 4}, status)
	assert.True(t, status.NeedSync())
}

func TestItemBucket_Batch_StampsZeroTimestamps(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)
	before := models.NowMillis()

	stashes, err := b.Batch(ctx, []models.Action{update("a", 0)}, true, nil)
	require.NoError(t, err)

	require.Len(t, stashes, 1)
	assert.GreaterOrEqual(t, stashes[0].Action.Timestamp, before)
	assert.True(t, stashes[0].Overlap)

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, items[0].UpdateAt(), before)
}

func TestItemBucket_Batch_Meta(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)
	key := models.MetaKeyFolderUserAliases

	_, err := b.Batch(ctx, []models.Action{
		{Type: models.ActionMeta, Meta: models.Meta{"currency": "EUR", key: []string{"ann"}}},
		{Type: models.ActionMeta, Meta: models.Meta{key: []string{"bob"}}},
	}, false, nil)
	require.NoError(t, err)

	meta, err := b.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", meta["currency"])
	assert.Equal(t, []string{"ann", "bob"}, meta.Aliases(key))
}

func TestItemBucket_Batch_Assets(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)
	upload := models.AssetUpload{Path: "assets/1-a.png", File: models.File{Name: "a.png", MIMEType: "image/png", Data: pngBytes}}

	_, err := b.Batch(ctx, []models.Action{update("a", 1, "photo", upload.Path)}, false, []models.AssetUpload{upload})
	require.NoError(t, err)

	f, ok, err := b.PendingAsset(ctx, upload.Path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pngBytes, f.Data)

	status, err := b.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.PendingAssets)

	require.NoError(t, b.Complete(ctx, nil, []string{upload.Path}, nil))
	_, ok, err = b.PendingAsset(ctx, upload.Path)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ── Patch / Replace / Init ───────────────────────────────────────────────────

func TestItemBucket_Patch_ReplaysStashOverRemote(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)

	require.NoError(t, b.Init(ctx, []models.Item{entry("a", 1, "v", "base"), entry("b", 1, "v", "base")}, models.Meta{}))
	_, err := b.Batch(ctx, []models.Action{update("a", 5, "v", "local")}, false, nil)
	require.NoError(t, err)

	// remote carries an older write to a and a newer one to b
	err = b.Patch(ctx, []models.Item{entry("a", 3, "v", "remote"), entry("b", 7, "v", "remote"), entry("c", 2)}, nil)
	require.NoError(t, err)

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(items))
	assert.Equal(t, "local", byID(items, "a")["v"])
	assert.Equal(t, "remote", byID(items, "b")["v"])

	stashes, err := b.Stashes(ctx)
	require.NoError(t, err)
	assert.Len(t, stashes, 1, "patch keeps the stash queue")
}

func TestItemBucket_Patch_MetaKeepsPendingChanges(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)

	_, err := b.Batch(ctx, []models.Action{{Type: models.ActionMeta, Meta: models.Meta{"title": "mine"}}}, false, nil)
	require.NoError(t, err)

	require.NoError(t, b.Patch(ctx, nil, models.Meta{"title": "theirs", "currency": "EUR"}))

	meta, err := b.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mine", meta["title"])
	assert.Equal(t, "EUR", meta["currency"])
}

func TestItemBucket_Replace(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)

	require.NoError(t, b.Init(ctx, []models.Item{entry("old", 1)}, models.Meta{"title": "old"}))
	_, err := b.Batch(ctx, []models.Action{update("mine", 4)}, false, nil)
	require.NoError(t, err)

	require.NoError(t, b.Replace(ctx, []models.Item{entry("x", 2), entry("y", 2)}, nil))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "mine"}, itemIDs(items))

	meta, err := b.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", meta["title"], "nil meta keeps the stored one")
}

func TestItemBucket_Init_DropsQueue(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)

	_, err := b.Batch(ctx, []models.Action{update("a", 1)}, false, []models.AssetUpload{{Path: "assets/x.bin"}})
	require.NoError(t, err)

	require.NoError(t, b.Init(ctx, []models.Item{entry("r", 1), models.NewTombstone("gone", 1)}, models.Meta{"k": "v"}))

	items, err := b.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, itemIDs(items))

	status, err := b.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.NeedSync())
}

// ── Complete ─────────────────────────────────────────────────────────────────

func TestItemBucket_CompleteKeepsLaterStashes(t *testing.T) {
	ctx := context.Background()
	b := newTestBucket(t)

	first, err := b.Batch(ctx, []models.Action{update("a", 1)}, false, nil)
	require.NoError(t, err)
	_, err = b.Batch(ctx, []models.Action{update("b", 2)}, false, nil)
	require.NoError(t, err)

	require.NoError(t, b.Complete(ctx, []int64{first[0].ID}, nil, map[string]any{cacheKeyStructure: models.Structure{}}))

	stashes, err := b.Stashes(ctx)
	require.NoError(t, err)
	require.Len(t, stashes, 1)
	assert.Equal(t, "b", stashes[0].Action.ID)

	var s models.Structure
	ok, err := b.Value(ctx, cacheKeyStructure, &s)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.DeleteStashes(ctx, stashes[0].ID))
	status, err := b.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.PendingStashes)
}

func TestItemBucket_CompleteNothing(t *testing.T) {
	b := newTestBucket(t)

	assert.NoError(t, b.Complete(context.Background(), nil, nil, nil))
}

func mustInt(t *testing.T, v any) int64 {
	t.Helper()
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		require.NoError(t, err)
		return i
	default:
		t.Fatalf("not a number: %T", v)
		return 0
	}
}
