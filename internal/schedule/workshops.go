package schedule

import (
	"fmt"
	"strings"

	"confsched/internal/model"
)

// groupWorkshops collects the first occurrence of every workshop in
// chronological order (day number, then grid order) and clusters
// neighbours that share a date range.
func groupWorkshops(days []*model.Day) ([]*model.WorkshopGroup, error) {
	seen := make(map[string]struct{})
	var workshops []*model.SessionInstance
	for _, day := range byDayNum(days) {
		for _, ts := range day.Timeslots {
			for _, slot := range ts.SessionSlots {
				for _, inst := range slot.Sessions {
					if !inst.IsWorkshop() {
						continue
					}
					if _, ok := seen[inst.ID]; ok {
						continue
					}
					seen[inst.ID] = struct{}{}
					workshops = append(workshops, inst)
				}
			}
		}
	}

	var groups []*model.WorkshopGroup
	for _, w := range workshops {
		dateRange, err := formatDateRange(w)
		if err != nil {
			return nil, err
		}
		if n := len(groups); n > 0 && groups[n-1].DateRange == dateRange {
			groups[n-1].Workshops = append(groups[n-1].Workshops, w)
			continue
		}
		groups = append(groups, &model.WorkshopGroup{
			Name:      w.Days[0].AltLabel,
			DateRange: dateRange,
			Workshops: []*model.SessionInstance{w},
		})
	}
	return groups, nil
}

// formatDateRange renders the days an instance runs on. Trailing date
// tokens shared by the first and last day are written once, but each side
// keeps its day number and month: "Monday, 10 June - Tuesday, 11 June 2024".
func formatDateRange(inst *model.SessionInstance) (string, error) {
	switch len(inst.Days) {
	case 0:
		return "", &MissingDayAssociationError{Slug: inst.Slug}
	case 1:
		d := inst.Days[0]
		return fmt.Sprintf("%s, %s", d.Name, d.DateStr), nil
	}

	first, last := inst.Days[0], inst.Days[len(inst.Days)-1]
	p1 := strings.Fields(first.DateStr)
	p2 := strings.Fields(last.DateStr)

	shared := commonSuffixLen(p1, p2)
	if keep := min(2, len(p1), len(p2)); len(p1)-shared < keep {
		shared = len(p1) - keep
	}
	date1 := strings.Join(p1[:len(p1)-shared], " ")
	date2 := strings.Join(p2[:len(p2)-shared], " ")

	out := fmt.Sprintf("%s, %s - %s, %s", first.Name, date1, last.Name, date2)
	if shared > 0 {
		out += " " + strings.Join(p1[len(p1)-shared:], " ")
	}
	return out, nil
}

func commonSuffixLen(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
