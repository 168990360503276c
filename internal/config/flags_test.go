package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		host        string
		port        int
	}{
		{name: "localhost", input: "localhost:7420", host: "localhost", port: 7420},
		{name: "ipv4", input: "127.0.0.1:80", host: "127.0.0.1", port: 80},
		{name: "empty host", input: ":8080", host: "", port: 8080},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port too large", input: "localhost:70000", expectError: true},
		{name: "bad ip", input: "999.1.1.1:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, a.Host)
			assert.Equal(t, tt.port, a.Port)
		})
	}
}

func TestBindFlags_ParsesValues(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	get := BindFlags(fs)

	err := fs.Parse([]string{
		"-c", "cfg.yaml",
		"--backend", "s3",
		"--data-dir", "/tmp/ls",
		"--items-per-chunk", "2",
		"-a", "localhost:9999",
		"--sync-interval", "10s",
		"--alias", "bob",
	})
	require.NoError(t, err)

	cfg := get()
	assert.Equal(t, "cfg.yaml", cfg.FilePath)
	assert.Equal(t, "s3", cfg.Backend.Type)
	assert.Equal(t, "/tmp/ls", cfg.Storage.DataDir)
	assert.Equal(t, 2, cfg.Backend.ItemsPerChunk)
	assert.Equal(t, "localhost:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, "bob", cfg.App.Alias)
}

func TestBindFlags_UnsetFlagsStayZero(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	get := BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, &StructuredConfig{}, get())
}

func TestBindFlags_RejectsBadAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)

	assert.Error(t, fs.Parse([]string{"--address", "nope"}))
}
