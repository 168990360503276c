// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, content hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClientCtxKey is the key used to store the authenticated local API client
// name in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ClientCtxKey, "cli")
var ClientCtxKey = contextKey("client")

// BookIDCtxKey is the key used to store the book a request operates on.
var BookIDCtxKey = contextKey("bookID")

// GetClientFromContext retrieves the local API client name from the context.
//
// Returns the client name and an ok flag:
//   - ok == true: value is found and is a non-empty string
//   - ok == false: value is missing or has an unexpected type
func GetClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(ClientCtxKey).(string)
	return client, ok && client != ""
}

// WithBookID returns a copy of ctx carrying bookID.
func WithBookID(ctx context.Context, bookID string) context.Context {
	return context.WithValue(ctx, BookIDCtxKey, bookID)
}

// GetBookIDFromContext retrieves the book identifier stored by WithBookID.
func GetBookIDFromContext(ctx context.Context) (string, bool) {
	bookID, ok := ctx.Value(BookIDCtxKey).(string)
	return bookID, ok && bookID != ""
}
