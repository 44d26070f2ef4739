package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"confsched/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ctx.configPath()
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			cfg := config.DefaultConfig()
			cfg.Years = []config.YearConfig{{
				Year:     2024,
				Schedule: "data/2024/schedule.yaml",
				Sessions: []string{"data/2024/sessions.yaml", "data/2024/fixed_sessions.yaml"},
			}}
			if err := config.Save(target, cfg); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the years entries to point at your schedule and session files.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and build every year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath())
			years := make([]string, 0, len(cfg.Years))
			for _, y := range cfg.Years {
				if _, err := ctx.build(cmd.Context(), y); err != nil {
					return err
				}
				years = append(years, fmt.Sprint(y.Year))
			}
			if len(years) > 0 {
				fmt.Fprintf(out, "Built years: %s\n", strings.Join(years, ", "))
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
