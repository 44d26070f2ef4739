package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var yearFlag int
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &yearFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "confsched",
		Short:         "Assemble conference schedules from session and grid files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return ctx.applyLogLevel("")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.applyLogLevel(cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", defaultConfigPath, "Configuration file path")
	rootCmd.PersistentFlags().IntVarP(&yearFlag, "year", "y", 0, "Conference year (defaults to the latest configured year)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newWorkshopsCommand(ctx))
	rootCmd.AddCommand(newICSCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
