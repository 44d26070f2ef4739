package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"confsched/internal/ics"
)

func newICSCommand(ctx *commandContext) *cobra.Command {
	var output string
	var baseURL string
	var list bool

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export a year as an iCalendar feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(cfg.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
			}
			s, err := ctx.buildSelected(cmd)
			if err != nil {
				return err
			}

			body, err := ics.Export(s, ics.ExportOptions{Location: loc, BaseURL: baseURL})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if list {
				events, err := ics.Parse(strings.NewReader(body))
				if err != nil {
					return fmt.Errorf("read back calendar: %w", err)
				}
				occ := ics.Expand(events, ics.ExpandConfig{DisplayLocation: loc})
				rows := make([][]string, 0, len(occ))
				for _, o := range occ {
					rows = append(rows, []string{
						o.Start.Format("Mon 2 Jan"),
						o.Start.Format("15:04") + "-" + o.End.Format("15:04"),
						o.Summary,
						o.Location,
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{Header: "Day", Merge: true},
					{Header: "Time"},
					{Header: "Summary", WidthMax: widthTitle},
					{Header: "Location", WidthMax: widthLabel},
				}, rows))
				return nil
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprint(out, body)
				return err
			}
			if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(out, "Wrote %d calendar to %s\n", s.Year, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the feed to this file instead of stdout")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Session page base URL added to each event")
	cmd.Flags().BoolVar(&list, "list", false, "Print the expanded occurrences instead of the feed")
	return cmd
}
