package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/frontkit/internal/app"
	"github.com/MKhiriev/frontkit/internal/config"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/models"
)

const loggerRole = "frontkit"

// cli carries the state shared by all subcommands. It is filled by the root
// PersistentPreRunE once flags are parsed.
type cli struct {
	info   models.AppBuildInfo
	cfg    *config.StructuredConfig
	logger *logger.Logger
	app    *app.App
}

func newRootCmd(info models.AppBuildInfo) *cobra.Command {
	c := &cli{info: info}

	cmd := &cobra.Command{
		Use:               "frontkit",
		Short:             "Frontend dev server, bundler and preview server",
		Long:              "frontkit serves a web frontend in development, bundles it for production, previews the bundle and runs its tests.",
		Version:           info.BuildVersion(),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	cmd.SetVersionTemplate(info.String())
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newDevCmd(c),
		newBuildCmd(c),
		newPreviewCmd(c),
		newTestCmd(c),
		newConfigCmd(c),
		newHistoryCmd(c),
	)
	return cmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetStructuredConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.cfg = cfg
	c.logger = logger.NewConsoleLogger(loggerRole, cmd.ErrOrStderr(), cfg.App.LogLevel)
	c.app = app.New(cfg, c.info, cmd.OutOrStdout(), cmd.ErrOrStderr(), c.logger)
	return nil
}
