package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "confsched/internal/log"
	"confsched/internal/schedule"
	"confsched/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schedules over HTTP and rebuild them on the refresh schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// --listen overrides the config file if provided.
			if listen != "" {
				cfg.Listen = listen
			}

			appLog.Info("effective config",
				"listen", cfg.Listen,
				"timezone", cfg.Timezone,
				"refresh", cfg.RefreshCron,
				"years", len(cfg.Years),
				"image_base", cfg.ImageBase,
			)

			// Root context with cancellation on SIGINT/SIGTERM.
			runCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					appLog.Info("signal received, shutting down", "signal", sig.String())
					cancel()
				case <-runCtx.Done():
				}
			}()

			cache := schedule.NewCache()
			rebuild := func(rctx context.Context) error {
				return ctx.refreshAll(rctx, cache)
			}

			// A year that fails here is simply absent until a later rebuild.
			if err := rebuild(runCtx); err != nil {
				appLog.Warn("initial build incomplete", "error", err.Error(), "built_years", len(cache.Years()))
			}

			c := cron.New()
			if _, err := c.AddFunc(cfg.RefreshCron, func() {
				appLog.Info("scheduled rebuild start")
				if err := rebuild(runCtx); err != nil {
					return
				}
				appLog.Info("scheduled rebuild done", "years", len(cache.Years()))
			}); err != nil {
				return fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshCron, err)
			}
			c.Start()
			defer func() {
				<-c.Stop().Done()
			}()

			srv := web.NewServer(cfg, cache, rebuild)
			if err := srv.Run(runCtx); err != nil {
				return err
			}
			appLog.Info("confsched exiting")
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set)")
	return cmd
}
