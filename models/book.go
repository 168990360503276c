// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"context"
	"time"
)

// Book is a self-contained ledger and the unit of synchronisation.
// ID is the backend specific full name, Name is what the user typed.
type Book struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserInfo describes the account the remote is authenticated as.
type UserInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// File is a binary attachment, either embedded in an outgoing item or
// fetched back from the remote assets directory.
type File struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// AssetUpload pairs a generated asset path with the bytes to upload.
type AssetUpload struct {
	Path string `json:"path"`
	File File   `json:"file"`
}

// SyncStatus summarises what a book still has to push.
type SyncStatus struct {
	PendingStashes int `json:"pending_stashes"`
	PendingAssets  int `json:"pending_assets"`
}

// NeedSync reports whether anything is left to push.
func (s SyncStatus) NeedSync() bool {
	return s.PendingStashes > 0 || s.PendingAssets > 0
}

// SyncRun is a handle to one scheduled synchronisation run.
type SyncRun interface {
	// Done is closed when the run completes.
	Done() <-chan struct{}
	// Err returns the run error once Done is closed.
	Err() error
	// Wait blocks until the run completes or ctx is done.
	Wait(ctx context.Context) error
}

// Backend names.
const (
	BackendGit     = "git"
	BackendWebDAV  = "webdav"
	BackendS3      = "s3"
	BackendFolder  = "folder"
	BackendOffline = "offline"
)

// Credentials are the explicit login parameters for one backend.
type Credentials struct {
	Backend  string `json:"backend"`
	Endpoint string `json:"endpoint,omitempty"`
	Username string `json:"username,omitempty"`
	// Secret is a token, password or secret access key depending on Backend.
	Secret    string    `json:"secret,omitempty"`
	AccessKey string    `json:"access_key,omitempty"`
	Bucket    string    `json:"bucket,omitempty"`
	Region    string    `json:"region,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Expired reports whether the credentials carry an expiry in the past.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
