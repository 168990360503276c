package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// DefaultItemsPerChunk is the page size of chunk files.
const DefaultItemsPerChunk = 1000

// Page is one chunk file about to be written.
type Page struct {
	Path       string        `json:"path"`
	StartIndex int           `json:"start_index"`
	Entries    []models.Item `json:"entries"`
}

// Rechunk splits entries into pages of perChunk entries, the first one
// starting at start. Paths follow the "<entry>-<startIndex>.json" layout.
func Rechunk(entryName string, start int, entries []models.Item, perChunk int) []Page {
	if perChunk <= 0 {
		perChunk = DefaultItemsPerChunk
	}

	pages := make([]Page, 0, len(entries)/perChunk+1)
	for off := 0; off < len(entries); off += perChunk {
		end := min(off+perChunk, len(entries))
		pages = append(pages, Page{
			Path:       models.ChunkPath(entryName, start+off),
			StartIndex: start + off,
			Entries:    entries[off:end],
		})
	}
	return pages
}

// File encodes the page as a JSON array.
func (p Page) File() (models.RemoteFile, error) {
	entries := p.Entries
	if entries == nil {
		entries = []models.Item{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return models.RemoteFile{}, fmt.Errorf("failed to encode chunk %s: %w", p.Path, err)
	}
	return models.RemoteFile{Path: p.Path, Data: data}, nil
}

// decodeChunk parses the content of a chunk file.
func decodeChunk(f models.RemoteFile) ([]models.Item, error) {
	var entries []models.Item
	dec := json.NewDecoder(bytes.NewReader(f.Data))
	dec.UseNumber()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptedChunk, f.Path, err)
	}
	return entries, nil
}

// decodeMeta parses meta.json. An empty file is an empty meta.
func decodeMeta(f models.RemoteFile) (models.Meta, error) {
	meta := models.Meta{}
	if len(bytes.TrimSpace(f.Data)) == 0 {
		return meta, nil
	}
	dec := json.NewDecoder(bytes.NewReader(f.Data))
	dec.UseNumber()
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedMeta, err)
	}
	if meta == nil {
		meta = models.Meta{}
	}
	return meta, nil
}

func encodeMeta(meta models.Meta) (models.RemoteFile, error) {
	if meta == nil {
		meta = models.Meta{}
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return models.RemoteFile{}, fmt.Errorf("failed to encode meta: %w", err)
	}
	return models.RemoteFile{Path: models.MetaFile, Data: data}, nil
}
