// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBooksCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List, create and share books",
	}
	cmd.AddCommand(
		newBooksListCmd(c),
		newBooksCreateCmd(c),
		&cobra.Command{
			Use:   "init <book>",
			Short: "Open a book on this device",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.connect(cmd.Context()); err != nil {
					return err
				}
				return c.app.Endpoint().InitBook(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "delete <book>",
			Short: "Delete a book locally and on the remote",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.connect(cmd.Context()); err != nil {
					return err
				}
				return c.app.Endpoint().DeleteBook(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "invite <book> <username>",
			Short: "Grant another account access to a book",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.connect(cmd.Context()); err != nil {
					return err
				}
				return c.app.Endpoint().InviteForBook(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "collaborators <book>",
			Short: "List the accounts with access to a book",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.connect(cmd.Context()); err != nil {
					return err
				}
				users, err := c.app.Endpoint().GetCollaborators(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), users)
			},
		},
	)
	return cmd
}

func newBooksListCmd(c *cli) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the books on the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if local {
				ids, err := c.app.Endpoint().LocalBooks(cmd.Context())
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			if err := c.connect(cmd.Context()); err != nil {
				return err
			}
			books, err := c.app.Endpoint().FetchAllBooks(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range books {
				fmt.Fprintf(out, "%s\t%s\n", b.ID, b.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "List only the books opened on this device")
	return cmd
}

func newBooksCreateCmd(c *cli) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a book and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.connect(ctx); err != nil {
				return err
			}
			book, err := c.app.Endpoint().CreateBook(ctx, args[0])
			if err != nil {
				return err
			}
			if open {
				if err = c.app.Endpoint().InitBook(ctx, book.ID); err != nil {
					return fmt.Errorf("book %s created but not opened: %w", book.ID, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), book.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", true, "Open the new book on this device")
	return cmd
}
