package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"confsched/internal/config"
	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/schedule"
	"confsched/internal/source"
)

const defaultConfigPath = "confsched.yaml"

type commandContext struct {
	configFlag   *string
	yearFlag     *int
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
	fetcher    *source.Fetcher
}

func newCommandContext(configFlag *string, yearFlag *int, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		yearFlag:     yearFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil || strings.TrimSpace(*c.configFlag) == "" {
		return defaultConfigPath
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.fetcher = source.NewFetcher(cfg.CacheDir)
	})
	return c.config, c.configErr
}

// applyLogLevel sets the log level from --log-level, falling back to the
// configured level.
func (c *commandContext) applyLogLevel(configured string) error {
	value := configured
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		value = *c.logLevelFlag
	}
	level, ok := appLog.ParseLevel(value)
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	appLog.SetLevel(level)
	return nil
}

// selectedYear returns the --year entry, or the latest configured year.
func (c *commandContext) selectedYear() (config.YearConfig, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return config.YearConfig{}, err
	}
	if c.yearFlag != nil && *c.yearFlag != 0 {
		y, ok := cfg.Year(*c.yearFlag)
		if !ok {
			return config.YearConfig{}, fmt.Errorf("year %d is not configured in %s", *c.yearFlag, c.configPath())
		}
		return y, nil
	}
	y, ok := cfg.Latest()
	if !ok {
		return config.YearConfig{}, fmt.Errorf("no years configured in %s; add a years entry", c.configPath())
	}
	return y, nil
}

func (c *commandContext) input(ctx context.Context, y config.YearConfig) (schedule.Input, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return schedule.Input{}, err
	}
	in, err := schedule.LoadInputFrom(ctx, c.fetcher, y.Year, y.Schedule, y.Sessions...)
	if err != nil {
		return schedule.Input{}, fmt.Errorf("year %d: %w", y.Year, err)
	}
	in.WorkshopsOnly = y.WorkshopsOnly
	in.ImageBase = cfg.ImageBase
	return in, nil
}

func (c *commandContext) build(ctx context.Context, y config.YearConfig) (*model.Schedule, error) {
	in, err := c.input(ctx, y)
	if err != nil {
		return nil, err
	}
	return schedule.Build(in)
}

func (c *commandContext) buildSelected(cmd *cobra.Command) (*model.Schedule, error) {
	y, err := c.selectedYear()
	if err != nil {
		return nil, err
	}
	return c.build(cmd.Context(), y)
}

// refreshAll rebuilds every configured year into cache. A failing year
// keeps its previous schedule; the errors are joined.
func (c *commandContext) refreshAll(ctx context.Context, cache *schedule.Cache) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	var errs []error
	for _, y := range cfg.Years {
		in, err := c.input(ctx, y)
		if err == nil {
			_, err = cache.Refresh(in)
		}
		if err != nil {
			appLog.Error("schedule rebuild failed", err, "year", y.Year)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
