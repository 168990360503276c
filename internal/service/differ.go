package service

import (
	"slices"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Diff compares a freshly fetched remote structure with the cached one and
// returns the chunks that have to be fetched again.
//
// Without a cache the whole remote is returned with Patch false. Otherwise
// both chunk lists are ordered by start index and every remote chunk from
// the first ETag divergence on is returned; Patch is false when the
// divergence is at the first chunk. A remote with fewer chunks than the
// cache has been rewritten, so it diverges at the first chunk too. Meta is
// returned iff its ETag changed.
func Diff(remote models.Structure, local *models.Structure) models.StructureDiff {
	chunks := sortedChunks(remote.Chunks)

	if local == nil {
		return models.StructureDiff{Meta: remote.Meta, Chunks: chunks, Patch: false}
	}

	cached := sortedChunks(local.Chunks)
	i := 0
	if len(chunks) >= len(cached) {
		for i < len(cached) && chunks[i].StartIndex == cached[i].StartIndex && chunks[i].ETag == cached[i].ETag {
			i++
		}
	}

	diff := models.StructureDiff{
		Chunks: chunks[i:],
		// an unchanged chunk list is a patch: nothing is replaced
		Patch: i != 0 || (len(chunks) == 0 && len(cached) == 0),
	}
	if len(diff.Chunks) == 0 {
		diff.Chunks = nil
	}
	if remote.Meta != nil && (local.Meta == nil || remote.Meta.ETag != local.Meta.ETag) {
		diff.Meta = remote.Meta
	}
	return diff
}

func sortedChunks(chunks []models.Chunk) []models.Chunk {
	out := slices.Clone(chunks)
	slices.SortStableFunc(out, func(a, b models.Chunk) int {
		return a.StartIndex - b.StartIndex
	})
	return out
}
