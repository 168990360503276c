// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Remote layout of a book.
const (
	MetaFile  = "meta.json"
	AssetsDir = "assets"
)

// FileEntry describes one remote file. ETag and LastMod are opaque change
// tokens that are only ever compared for equality.
type FileEntry struct {
	Path    string `json:"path"`
	ETag    string `json:"etag"`
	LastMod string `json:"lastmod,omitempty"`
	Size    int64  `json:"size"`
}

// Chunk is a remote page of the item log starting at StartIndex.
type Chunk struct {
	FileEntry
	StartIndex int `json:"start_index"`
}

// Structure is a snapshot of the files that make up a remote book.
type Structure struct {
	Chunks []Chunk     `json:"chunks"`
	Meta   *FileEntry  `json:"meta,omitempty"`
	Assets []FileEntry `json:"assets"`
}

// LastChunk returns the chunk with the highest start index.
func (s *Structure) LastChunk() (Chunk, bool) {
	if s == nil || len(s.Chunks) == 0 {
		return Chunk{}, false
	}
	last := s.Chunks[0]
	for _, c := range s.Chunks[1:] {
		if c.StartIndex > last.StartIndex {
			last = c
		}
	}
	return last, true
}

// StructureDiff lists the remote files that changed since the cached
// structure. Patch is false when the whole book has to be replaced.
type StructureDiff struct {
	Meta   *FileEntry `json:"meta,omitempty"`
	Chunks []Chunk    `json:"chunks"`
	Patch  bool       `json:"patch"`
}

// Empty reports whether nothing needs to be fetched.
func (d StructureDiff) Empty() bool {
	return d.Meta == nil && len(d.Chunks) == 0
}

// RemoteFile is the content of one remote file, read or to be written.
type RemoteFile struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

// ChunkPath names the chunk file of entry starting at start.
func ChunkPath(entry string, start int) string {
	return fmt.Sprintf("%s-%d.json", entry, start)
}

// ParseChunkPath extracts the start index from a chunk file name of entry.
func ParseChunkPath(entry, path string) (int, bool) {
	rest, ok := strings.CutPrefix(path, entry+"-")
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, ".json")
	if !ok || digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
