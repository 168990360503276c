package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the opened books in sync until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.connect(cmd.Context()); err != nil {
				return err
			}
			return c.app.Watch(cmd.Context())
		},
	}
}

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API and keep the opened books in sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.connect(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", c.cfg.Server.HTTPAddress)
			return c.app.Serve(cmd.Context())
		},
	}
}

var errNoSignKey = errors.New("no token sign key configured (APP_TOKEN_SIGN_KEY)")

// newTokenCmd issues a bearer token for a local API client.
func newTokenCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "token <client>",
		Short: "Issue a local API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.App.TokenSignKey == "" {
				return errNoSignKey
			}
			token, err := c.app.Auth().CreateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
			return nil
		},
	}
}
