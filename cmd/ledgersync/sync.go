package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [book...]",
		Short: "Sync books with the remote and wait for the result",
		Long:  "Sync the given books, or every book opened on this device when none is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.connect(ctx); err != nil {
				return err
			}

			ids := args
			if len(ids) == 0 {
				var err error
				if ids, err = c.app.Endpoint().LocalBooks(ctx); err != nil {
					return err
				}
			}

			var errs []error
			for _, id := range ids {
				if err := c.app.Endpoint().ToSync(id).Wait(ctx); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", id, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tsynced\n", id)
			}
			return errors.Join(errs...)
		},
	}
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <book>",
		Short: "Report what a book still has to push",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := c.app.Endpoint().GetIsNeedSync(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				PendingStashes int  `json:"pending_stashes"`
				PendingAssets  int  `json:"pending_assets"`
				NeedSync       bool `json:"need_sync"`
			}{status.PendingStashes, status.PendingAssets, status.NeedSync()})
		},
	}
}
