// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
)

// Reserved item fields.
const (
	// FieldID is the stable identity of an item within a book.
	FieldID = "id"
	// FieldUpdateAt holds the last-write-wins timestamp in unix milliseconds.
	FieldUpdateAt = "__update_at"
	// FieldDeleted marks an entry as a tombstone.
	FieldDeleted = "__deleted"
)

// Item is one ledger record. Apart from the reserved fields it is an
// arbitrary JSON object owned by the application.
type Item map[string]any

// ID returns the item identity or an empty string when it is missing.
func (i Item) ID() string {
	id, _ := i[FieldID].(string)
	return id
}

// UpdateAt returns the last-write-wins timestamp of the item.
// Values decoded from JSON arrive as float64 or json.Number.
func (i Item) UpdateAt() int64 {
	switch v := i[FieldUpdateAt].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(math.Round(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, _ := strconv.ParseFloat(v.String(), 64)
			return int64(f)
		}
		return n
	default:
		return 0
	}
}

// IsTombstone reports whether the entry records a deletion.
func (i Item) IsTombstone() bool {
	deleted, _ := i[FieldDeleted].(bool)
	return deleted
}

// Clone returns a shallow copy of the item.
func (i Item) Clone() Item {
	if i == nil {
		return nil
	}
	return maps.Clone(i)
}

// NewTombstone builds the log entry that deletes id at timestamp ts.
func NewTombstone(id string, ts int64) Item {
	return Item{FieldID: id, FieldUpdateAt: ts, FieldDeleted: true}
}
