// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// cli holds what the root command's pre-run builds for its subcommands.
type cli struct {
	flags func() *config.StructuredConfig
	cfg   *config.StructuredConfig
	app   *client.App
	log   *logger.Logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := &cli{}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgersync",
		Short: "Offline-first ledger books synced over git, WebDAV, S3 or a shared folder",
		Long: `ledgersync keeps ledger books in a local database and synchronises them
with a remote store. Changes are applied locally first, queued, and pushed
on the next sync; remote changes are merged last-write-wins per item.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	c.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newBooksCmd(c),
		newItemsCmd(c),
		newMetaCmd(c),
		newBatchCmd(c),
		newAssetCmd(c),
		newSyncCmd(c),
		newStatusCmd(c),
		newWatchCmd(c),
		newServeCmd(c),
		newTokenCmd(c),
	)
	return root
}

// setup loads the configuration and opens the application. Commands
// annotated with skipSetup run without it.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if !needsSetup(cmd) {
		return nil
	}

	cfg, err := config.Load(c.flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if buildVersion != "" {
		cfg.App.Version = buildVersion
	}

	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = filepath.Join(cfg.Storage.DataDir, "logs", "ledgersync.log")
	}
	c.log = logger.NewClientLogger("ledgersync", logger.FileOptions{
		Path:       logPath,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Stdout:     cfg.Log.Stdout,
	})

	ctx := c.log.WithContext(cmd.Context())
	app, err := client.NewApp(ctx, cfg, c.log)
	if err != nil {
		return err
	}

	c.cfg, c.app = cfg, app
	cmd.SetContext(ctx)
	return nil
}

// connect attaches the endpoint to the configured backend or the stored
// session.
func (c *cli) connect(ctx context.Context) error {
	if _, err := c.app.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

// tryConnect is connect for commands that also work offline.
func (c *cli) tryConnect(ctx context.Context) {
	if err := c.connect(ctx); err != nil {
		c.log.Warn().Err(err).Str("func", "cli.tryConnect").Msg("working locally")
	}
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

const skipSetup = "skip-setup"

func needsSetup(cmd *cobra.Command) bool {
	if cmd.Annotations[skipSetup] == "true" || cmd.Name() == "help" {
		return false
	}
	for p := cmd; p != nil; p = p.Parent() {
		if p.Name() == "completion" {
			return false
		}
	}
	return true
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
