package main

import "github.com/spf13/cobra"

func newDevCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "dev",
		Aliases: []string{"serve"},
		Short:   "Start the dev server with live reload and the API proxy",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Dev(cmd.Context())
		},
	}
}
