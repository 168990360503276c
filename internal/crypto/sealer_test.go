package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSealer returns a sealer with cheap Argon2 parameters.
func newTestSealer(t *testing.T, secret string) *sealer {
	t.Helper()
	s, err := NewSealer(secret)
	require.NoError(t, err)

	impl := s.(*sealer)
	impl.argonMemory = 1024
	impl.argonThreads = 1
	return impl
}

type creds struct {
	Backend string `json:"backend"`
	Secret  string `json:"secret"`
}

func TestNewSealer_EmptySecret(t *testing.T) {
	s, err := NewSealer("")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestSeal_RoundTrip(t *testing.T) {
	s := newTestSealer(t, "app-secret")

	blob, err := s.Seal(creds{Backend: "webdav", Secret: "hunter2"})
	require.NoError(t, err)
	assert.NotContains(t, blob, "hunter2")

	var got creds
	require.NoError(t, s.Open(blob, &got))
	assert.Equal(t, creds{Backend: "webdav", Secret: "hunter2"}, got)
}

func TestSeal_RandomizedOutput(t *testing.T) {
	s := newTestSealer(t, "app-secret")

	b1, err := s.Seal("same")
	require.NoError(t, err)
	b2, err := s.Seal("same")
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2, "salt and nonce must differ per blob")
}

func TestOpen_WrongSecret(t *testing.T) {
	blob, err := newTestSealer(t, "right").Seal("value")
	require.NoError(t, err)

	var got string
	err = newTestSealer(t, "wrong").Open(blob, &got)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpen_Tampered(t *testing.T) {
	s := newTestSealer(t, "app-secret")
	blob, err := s.Seal("value")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF

	var got string
	err = s.Open(base64.StdEncoding.EncodeToString(raw), &got)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpen_Malformed(t *testing.T) {
	s := newTestSealer(t, "app-secret")
	var got string

	assert.Error(t, s.Open("%%%not-base64", &got))
	assert.ErrorIs(t, s.Open(base64.StdEncoding.EncodeToString([]byte("short")), &got), ErrDecrypt)
	assert.ErrorIs(t, s.Open(base64.StdEncoding.EncodeToString(make([]byte, saltSize+4)), &got), ErrDecrypt)
}
