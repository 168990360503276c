package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/models"
)

var errNoActions = errors.New("no actions to apply")

func newItemsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "items <book>",
		Short: "Print the items of an opened book as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.app.Endpoint().GetAllItems(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if items == nil {
				items = []models.Item{}
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
}

func newMetaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "meta <book>",
		Short: "Print the meta of an opened book as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := c.app.Endpoint().GetMeta(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), meta)
		},
	}
}

// newBatchCmd applies a JSON array of actions read from a file or stdin.
func newBatchCmd(c *cli) *cobra.Command {
	var (
		file    string
		overlap bool
		wait    bool
	)
	cmd := &cobra.Command{
		Use:   "batch <book>",
		Short: "Apply a JSON array of actions to a book",
		Example: `  echo '[{"type":"update","id":"t1","value":{"amount":12}}]' | ledgersync batch ledger-home
  ledgersync batch ledger-home -f actions.json --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			actions, err := readActions(in)
			if err != nil {
				return err
			}

			c.tryConnect(ctx)
			if err = c.app.Endpoint().Batch(ctx, args[0], actions, overlap); err != nil {
				return err
			}
			if !wait {
				return nil
			}
			return c.app.Endpoint().ToSync(args[0]).Wait(ctx)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read actions from file instead of stdin")
	cmd.Flags().BoolVar(&overlap, "overlap", false, "Replace the remote book as a whole on the next sync")
	cmd.Flags().BoolVar(&wait, "wait", false, "Sync and wait for it to finish")
	return cmd
}

func readActions(r io.Reader) ([]models.Action, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var actions []models.Action
	if err := dec.Decode(&actions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoActions
		}
		return nil, fmt.Errorf("failed to decode actions: %w", err)
	}
	if len(actions) == 0 {
		return nil, errNoActions
	}
	return actions, nil
}
