// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ActionType enumerates the kinds of local mutations.
type ActionType string

const (
	// ActionUpdate upserts a full item value.
	ActionUpdate ActionType = "update"
	// ActionDelete removes an item by id.
	ActionDelete ActionType = "delete"
	// ActionMeta merges a patch into the book meta blob.
	ActionMeta ActionType = "meta"
)

// Action is a single local mutation submitted through a batch.
type Action struct {
	Type ActionType `json:"type"`
	ID   string     `json:"id,omitempty"`
	// Value is the full item for update actions.
	Value Item `json:"value,omitempty"`
	// Meta is the patch merged into the book meta for meta actions.
	Meta Meta `json:"meta,omitempty"`
	// Timestamp is the unix millisecond time used for last-write-wins.
	Timestamp int64 `json:"timestamp"`
}

// Entry converts an update or delete action into the log entry that is
// persisted locally and pushed to the remote chunk files.
// Meta actions have no entry and return nil.
func (a Action) Entry() Item {
	switch a.Type {
	case ActionUpdate:
		entry := a.Value.Clone()
		if entry == nil {
			entry = Item{}
		}
		entry[FieldID] = a.ID
		entry[FieldUpdateAt] = a.Timestamp
		delete(entry, FieldDeleted)
		return entry
	case ActionDelete:
		return NewTombstone(a.ID, a.Timestamp)
	default:
		return nil
	}
}

// Stash is a queued action that has not been pushed to the remote yet.
type Stash struct {
	// ID is the position of the stash in the queue; it grows monotonically.
	ID        int64     `json:"id"`
	Action    Action    `json:"action"`
	Overlap   bool      `json:"overlap"`
	CreatedAt time.Time `json:"created_at"`
}

// NowMillis returns the current time in unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
