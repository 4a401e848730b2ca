package main

import "github.com/spf13/cobra"

func newTestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "test [-- vitest args...]",
		Short: "Run the unit tests with vitest",
		Example: `  frontkit test
  frontkit test -- --coverage src/components`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Test(cmd.Context(), args)
		},
	}
}
