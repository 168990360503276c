// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestClientCtxKey(t *testing.T) {
	if ClientCtxKey.String() != "client" {
		t.Errorf("expected 'client', got '%s'", ClientCtxKey.String())
	}
}

func TestGetClientFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClientCtxKey, "cli")

	client, ok := GetClientFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if client != "cli" {
		t.Errorf("expected client=cli, got %s", client)
	}
}

func TestGetClientFromContext_Missing(t *testing.T) {
	client, ok := GetClientFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing key")
	}
	if client != "" {
		t.Errorf("expected empty client, got %s", client)
	}
}

func TestGetClientFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClientCtxKey, 42)

	if _, ok := GetClientFromContext(ctx); ok {
		t.Error("expected ok=false for wrong type")
	}
}

func TestBookIDRoundTrip(t *testing.T) {
	ctx := WithBookID(context.Background(), "ledger-home")

	bookID, ok := GetBookIDFromContext(ctx)
	if !ok || bookID != "ledger-home" {
		t.Errorf("expected ledger-home, got %q (ok=%v)", bookID, ok)
	}

	if _, ok = GetBookIDFromContext(context.Background()); ok {
		t.Error("expected ok=false on empty context")
	}
}
