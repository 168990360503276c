package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// ShortID returns n hex characters taken from the random tail of a UUIDv7.
// n is clamped to [1, 20].
func (g *UUIDGenerator) ShortID(n int) string {
	n = min(max(n, 1), 20)
	raw := strings.ReplaceAll(g.Generate(), "-", "")
	// the first 12 characters encode the timestamp
	return raw[len(raw)-n:]
}
