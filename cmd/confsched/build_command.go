package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"confsched/internal/config"
	"confsched/internal/model"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build schedules and report what was assembled",
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := buildTargets(ctx, all)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(years))
			var unscheduled []string
			for _, y := range years {
				s, err := ctx.build(cmd.Context(), y)
				if err != nil {
					return err
				}
				rows = append(rows, summaryRow(s))
				for _, id := range unscheduledIDs(s) {
					unscheduled = append(unscheduled, fmt.Sprintf("%d/%s", s.Year, id))
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(summaryColumns, rows))
			if len(unscheduled) > 0 {
				fmt.Fprintf(out, "Not placed in the grid: %s\n", strings.Join(unscheduled, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Build every configured year")
	return cmd
}

func buildTargets(ctx *commandContext, all bool) ([]config.YearConfig, error) {
	if !all {
		y, err := ctx.selectedYear()
		if err != nil {
			return nil, err
		}
		return []config.YearConfig{y}, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.Years) == 0 {
		return nil, fmt.Errorf("no years configured in %s", ctx.configPath())
	}
	return cfg.Years, nil
}

var summaryColumns = []column{
	{Header: "Year"},
	{Header: "Days", Align: alignRight},
	{Header: "Sessions", Align: alignRight},
	{Header: "Placed", Align: alignRight},
	{Header: "Slugs", Align: alignRight},
	{Header: "Speakers", Align: alignRight},
	{Header: "Workshop groups", Align: alignRight},
}

func summaryRow(s *model.Schedule) []string {
	placed := len(s.AllSessionsByID) - len(unscheduledIDs(s))
	return []string{
		strconv.Itoa(s.Year),
		strconv.Itoa(len(s.Days)),
		strconv.Itoa(len(s.AllSessionsByID)),
		strconv.Itoa(placed),
		strconv.Itoa(len(s.SessionsBySlug)),
		strconv.Itoa(len(s.SpeakersByID)),
		strconv.Itoa(len(s.WorkshopGroups)),
	}
}

func unscheduledIDs(s *model.Schedule) []string {
	var ids []string
	for id, data := range s.AllSessionsByID {
		if !data.Scheduled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
