package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"confsched/internal/model"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var dayNum int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the timetable of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.buildSelected(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			shown := 0
			for _, day := range s.Days {
				if dayNum != 0 && day.DayNum != dayNum {
					continue
				}
				heading := fmt.Sprintf("%s, %s", day.Name, day.DateStr)
				if day.Label != "" {
					heading += " (" + day.Label + ")"
				}
				fmt.Fprintln(out, heading)
				fmt.Fprintln(out, renderDay(s, day))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "No days to show")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&dayNum, "day", 0, "Only show the day with this day number")
	return cmd
}

func renderDay(s *model.Schedule, day *model.Day) string {
	columns := []column{{Header: "Time"}}
	for _, r := range day.Rooms {
		columns = append(columns, column{Header: s.RoomNames[r], WidthMax: widthTitle})
	}

	rows := make([][]string, 0, len(day.Timeslots))
	for _, ts := range day.Timeslots {
		row := make([]string, len(columns))
		row[0] = ts.Times[0].String() + "-" + ts.Times[len(ts.Times)-1].String()
		for _, slot := range ts.SessionSlots {
			col := slot.Index + 1
			if col >= len(row) {
				continue
			}
			row[col] = slotCell(slot)
		}
		if ts.IsTrackless() && len(row) > 2 {
			row[1] += " (all rooms)"
		}
		rows = append(rows, row)
	}
	return renderTable(columns, rows)
}

func slotCell(slot *model.SessionSlot) string {
	lines := make([]string, 0, len(slot.Sessions))
	for i, inst := range slot.Sessions {
		line := inst.Data.TitlePrefix() + inst.Data.TitleWithNames
		if !slot.IsSingle() {
			line = slot.Times[slot.Spans[i].StartTimeIndex].String() + " " + line
		}
		if inst.Live {
			line += " [live]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
