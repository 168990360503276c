package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newAssetCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "asset <book> <path>",
		Short: "Download an asset of a book",
		Example: `  ledgersync asset ledger-home assets/1f0c.png -o receipt.png`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.tryConnect(ctx)

			file, ok := c.app.Endpoint().GetOnlineAsset(ctx, args[0], args[1])
			if !ok {
				return fmt.Errorf("asset %s not found in %s", args[1], args[0])
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(file.Data)
				return err
			}
			return os.WriteFile(output, file.Data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the asset to file instead of stdout")
	return cmd
}
