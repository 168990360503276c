// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "maps"

// Keys of the private alias lists stored in meta.json.
const (
	MetaKeyGitUserAliases    = "_gitUserAliases"
	MetaKeyWebDAVUserAliases = "_webDAVUserAliases"
	MetaKeyS3UserAliases     = "_s3UserAliases"
	MetaKeyFolderUserAliases = "_folderUserAliases"
)

// Meta is the singleton metadata blob of a book (categories, tags,
// collaborator aliases and so on).
type Meta map[string]any

// Clone returns a shallow copy of m. A nil meta clones to an empty one.
func (m Meta) Clone() Meta {
	if m == nil {
		return Meta{}
	}
	return maps.Clone(m)
}

// Merge returns a copy of m with every top-level key of patch applied over it.
func (m Meta) Merge(patch Meta) Meta {
	merged := m.Clone()
	maps.Copy(merged, patch)
	return merged
}

// Aliases returns the string list stored under key.
func (m Meta) Aliases(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, a := range v {
			if s, ok := a.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// WithAlias returns a copy of m whose list under key contains alias.
// Lists are append-only and deduplicated; the second result is false
// when alias was already present and m was returned unchanged.
func (m Meta) WithAlias(key, alias string) (Meta, bool) {
	aliases := m.Aliases(key)
	for _, a := range aliases {
		if a == alias {
			return m, false
		}
	}

	out := m.Clone()
	out[key] = append(aliases, alias)
	return out, true
}

// AliasKeyFor returns the meta key holding the alias list of backend.
// Offline books are never shared and have no alias list.
func AliasKeyFor(backend string) string {
	switch backend {
	case BackendGit:
		return MetaKeyGitUserAliases
	case BackendWebDAV:
		return MetaKeyWebDAVUserAliases
	case BackendS3:
		return MetaKeyS3UserAliases
	case BackendFolder:
		return MetaKeyFolderUserAliases
	default:
		return ""
	}
}
