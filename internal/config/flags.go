package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// BindFlags registers every configuration flag on fs and returns a function
// that, once fs has been parsed, yields a config holding only the flag values.
// Unset flags leave zero values so they never override other sources.
//
// Flags:
//
//	-c/--config          JSON or YAML config file path
//	-b/--backend         backend type (git, webdav, s3, folder, offline)
//	--data-dir           local data directory
//	-d/--dsn             local database DSN
//	--prefix             book name prefix
//	--root               remote root directory
//	--items-per-chunk    chunk page size
//	--fetch-concurrency  parallel remote reads
//	-a/--address         local API address host:port
//	--sync-interval      background sync period (e.g. "1m")
//	--log-level          log level
//	--log-file           log file path
//	--alias              user alias registered in shared books
//	--manual-sync        do not sync after every batch
func BindFlags(fs *pflag.FlagSet) func() *StructuredConfig {
	var address NetAddress
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.FilePath, "config", "c", "", "JSON or YAML config file path")
	fs.StringVarP(&cfg.Backend.Type, "backend", "b", "", "Backend type: git, webdav, s3, folder, offline")
	fs.StringVar(&cfg.Storage.DataDir, "data-dir", "", "Local data directory")
	fs.StringVarP(&cfg.Storage.DB.DSN, "dsn", "d", "", "Local database DSN (SQLite path or postgres:// URL)")
	fs.StringVar(&cfg.Backend.Prefix, "prefix", "", "Book name prefix")
	fs.StringVar(&cfg.Backend.Root, "root", "", "Remote root directory")
	fs.IntVar(&cfg.Backend.ItemsPerChunk, "items-per-chunk", 0, "Items per chunk file")
	fs.IntVar(&cfg.Backend.FetchConcurrency, "fetch-concurrency", 0, "Parallel remote reads")
	fs.VarP(&address, "address", "a", "Local API address host:port")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync period (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.Log.Path, "log-file", "", "Log file path")
	fs.StringVar(&cfg.App.Alias, "alias", "", "Alias registered in shared books")
	fs.BoolVar(&cfg.Workers.ManualSync, "manual-sync", false, "Do not sync after every batch")

	return func() *StructuredConfig {
		cfg.Server.HTTPAddress = address.String()
		return cfg
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
