package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/models"
)

func TestRechunk_Boundaries(t *testing.T) {
	entries := []models.Item{entry("a", 1), entry("b", 1), entry("c", 1)}

	pages := Rechunk("items", 0, entries, 2)

	require.Len(t, pages, 2)
	assert.Equal(t, "items-0.json", pages[0].Path)
	assert.Equal(t, 0, pages[0].StartIndex)
	assert.Equal(t, []string{"a", "b"}, itemIDs(pages[0].Entries))
	assert.Equal(t, "items-2.json", pages[1].Path)
	assert.Equal(t, 2, pages[1].StartIndex)
	assert.Equal(t, []string{"c"}, itemIDs(pages[1].Entries))
}

func TestRechunk_FromTail(t *testing.T) {
	entries := []models.Item{entry("x", 1), entry("y", 1), entry("z", 1)}

	pages := Rechunk("bills", 4000, entries, 2)

	require.Len(t, pages, 2)
	assert.Equal(t, "bills-4000.json", pages[0].Path)
	assert.Equal(t, "bills-4002.json", pages[1].Path)
	assert.Equal(t, 4002, pages[1].StartIndex)
}

func TestRechunk_DefaultPageSize(t *testing.T) {
	entries := make([]models.Item, DefaultItemsPerChunk+1)
	for i := range entries {
		entries[i] = entry("e", 1)
	}

	pages := Rechunk("items", 0, entries, 0)

	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Entries, DefaultItemsPerChunk)
	assert.Equal(t, "items-1000.json", pages[1].Path)
}

func TestRechunk_Empty(t *testing.T) {
	assert.Empty(t, Rechunk("items", 0, nil, 2))
}

func TestPage_File(t *testing.T) {
	f, err := Page{Path: "items-0.json"}.File()
	require.NoError(t, err)
	assert.Equal(t, "items-0.json", f.Path)
	assert.JSONEq(t, `[]`, string(f.Data))

	f, err = Page{Path: "items-0.json", Entries: []models.Item{entry("a", 7, "amount", 12.5)}}.File()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","__update_at":7,"amount":12.5}]`, string(f.Data))
}

func TestDecodeChunk(t *testing.T) {
	entries, err := decodeChunk(models.RemoteFile{Path: "items-0.json", Data: []byte(`[{"id":"a","__update_at":1712345678901}]`)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID())
	assert.Equal(t, int64(1712345678901), entries[0].UpdateAt())
	assert.IsType(t, json.Number(""), entries[0][models.FieldUpdateAt])

	_, err = decodeChunk(models.RemoteFile{Path: "items-2.json", Data: []byte(`{"oops"`)})
	assert.ErrorIs(t, err, ErrCorruptedChunk)
	assert.Contains(t, err.Error(), "items-2.json")
}

func TestDecodeMeta(t *testing.T) {
	meta, err := decodeMeta(models.RemoteFile{Path: models.MetaFile})
	require.NoError(t, err)
	assert.Equal(t, models.Meta{}, meta)

	meta, err = decodeMeta(models.RemoteFile{Path: models.MetaFile, Data: []byte(`null`)})
	require.NoError(t, err)
	assert.Equal(t, models.Meta{}, meta)

	meta, err = decodeMeta(models.RemoteFile{Path: models.MetaFile, Data: []byte(`{"currency":"EUR"}`)})
	require.NoError(t, err)
	assert.Equal(t, models.Meta{"currency": "EUR"}, meta)

	_, err = decodeMeta(models.RemoteFile{Path: models.MetaFile, Data: []byte(`[1,2]`)})
	assert.ErrorIs(t, err, ErrCorruptedMeta)
}

func TestEncodeMeta(t *testing.T) {
	f, err := encodeMeta(nil)
	require.NoError(t, err)
	assert.Equal(t, models.MetaFile, f.Path)
	assert.JSONEq(t, `{}`, string(f.Data))
}
