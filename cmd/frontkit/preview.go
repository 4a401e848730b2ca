package main

import "github.com/spf13/cobra"

func newPreviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Serve the production build locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Preview(cmd.Context())
		},
	}
}
