package main

import "github.com/spf13/cobra"

func newBuildCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Bundle the project for production",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Build(cmd.Context())
			return err
		},
	}
}
