package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/frontkit/internal/app"
)

func newConfigCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved build descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := c.app.Describe(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", app.FormatJSON, "Output format (json, yaml)")
	return cmd
}
