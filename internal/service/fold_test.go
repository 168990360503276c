package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-ledger-sync/models"
)

func TestLedger_LastWriteWins(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.Item
		want    string
	}{
		{
			name:    "newer arrives last",
			entries: []models.Item{entry("a", 1, "v", "old"), entry("a", 2, "v", "new")},
			want:    "new",
		},
		{
			name:    "newer arrives first",
			entries: []models.Item{entry("a", 2, "v", "new"), entry("a", 1, "v", "old")},
			want:    "new",
		},
		{
			name:    "equal timestamps keep the later arrival",
			entries: []models.Item{entry("a", 5, "v", "first"), entry("a", 5, "v", "second")},
			want:    "second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(nil)
			l.applyAll(tt.entries)

			all := l.all()
			assert.Len(t, all, 1)
			assert.Equal(t, tt.want, all[0]["v"])
		})
	}
}

func TestLedger_KeepsFirstInsertionOrder(t *testing.T) {
	l := newLedger([]models.Item{entry("b", 1), entry("a", 1)})
	l.applyAll([]models.Item{entry("c", 1), entry("a", 2), entry("d", 1)})

	assert.Equal(t, []string{"b", "a", "c", "d"}, itemIDs(l.all()))
	assert.Equal(t, []string{"a", "c", "d"}, itemIDs(l.changes()))
}

func TestLedger_IgnoresEntriesWithoutID(t *testing.T) {
	l := newLedger(nil)

	assert.False(t, l.apply(models.Item{models.FieldUpdateAt: int64(1)}))
	assert.Empty(t, l.all())
	assert.Empty(t, l.changes())
}

func TestLedger_StaleEntryIsNotAChange(t *testing.T) {
	l := newLedger([]models.Item{entry("a", 10)})

	assert.False(t, l.apply(entry("a", 3)))
	assert.Empty(t, l.changes())
}

func TestLedger_TombstoneHidesItem(t *testing.T) {
	l := newLedger([]models.Item{entry("a", 1), entry("b", 1)})
	l.apply(models.NewTombstone("a", 2))

	assert.Len(t, l.all(), 2)
	assert.Equal(t, []string{"b"}, itemIDs(material(l.all())))
}

func TestFoldStashes_ReplaysInOrder(t *testing.T) {
	l := newLedger([]models.Item{entry("a", 1, "v", "base")})
	stashes := []models.Stash{
		{Action: update("a", 5, "v", "local")},
		{Action: models.Action{Type: models.ActionMeta, Meta: models.Meta{"currency": "EUR"}}},
		{Action: remove("b", 6)},
		{Action: models.Action{Type: models.ActionMeta, Meta: models.Meta{"currency": "USD", "title": "Home"}}},
	}

	meta := foldStashes(l, models.Meta{"currency": "GBP", "owner": "kim"}, stashes)

	assert.Equal(t, models.Meta{"currency": "USD", "owner": "kim", "title": "Home"}, meta)
	assert.Equal(t, "local", byID(l.all(), "a")["v"])
	assert.True(t, byID(l.all(), "b").IsTombstone())
}

func TestFoldStashes_RemoteNewerThanStashWins(t *testing.T) {
	l := newLedger(nil)
	l.apply(entry("a", 9, "v", "remote"))

	foldStashes(l, nil, []models.Stash{{Action: update("a", 4, "v", "local")}})

	assert.Equal(t, "remote", byID(l.all(), "a")["v"])
}

func TestMergeMeta_UnionsAliases(t *testing.T) {
	key := models.MetaKeyGitUserAliases
	base := models.Meta{key: []any{"ann", "bob"}, "title": "Home"}

	merged := mergeMeta(base, models.Meta{key: []string{"bob", "cid"}, "title": "Flat"})

	assert.Equal(t, []string{"ann", "bob", "cid"}, merged.Aliases(key))
	assert.Equal(t, "Flat", merged["title"])
	// base is not modified
	assert.Equal(t, "Home", base["title"])
}

func TestMergeMeta_NilBase(t *testing.T) {
	merged := mergeMeta(nil, models.Meta{"a": 1})

	assert.Equal(t, models.Meta{"a": 1}, merged)
}
