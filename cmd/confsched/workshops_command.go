package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWorkshopsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "workshops",
		Short: "List workshops grouped by date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.buildSelected(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(s.WorkshopGroups) == 0 {
				fmt.Fprintln(out, "No workshops scheduled")
				return nil
			}

			var rows [][]string
			for _, g := range s.WorkshopGroups {
				for _, w := range g.Workshops {
					rows = append(rows, []string{
						g.Name,
						g.DateRange,
						w.Data.TitleWithNames,
						w.Room,
						w.StartTime.String() + "-" + w.EndTime.String(),
						w.Data.LengthDescription,
						yesNo(w.Live),
					})
				}
			}
			fmt.Fprintln(out, renderTable([]column{
				{Header: "Group", WidthMax: widthLabel, Merge: true},
				{Header: "Dates", Merge: true},
				{Header: "Workshop", WidthMax: widthTitle},
				{Header: "Room", WidthMax: widthLabel},
				{Header: "Time"},
				{Header: "Length"},
				{Header: "Live"},
			}, rows))
			return nil
		},
	}
}
