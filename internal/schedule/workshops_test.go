package schedule

import (
	"errors"
	"testing"

	"confsched/internal/model"
	"confsched/internal/sessions"
)

func workshopDescriptor(t *testing.T) *Descriptor {
	return &Descriptor{
		RoomNames: []string{"Lab 1", "Lab 2"},
		Days: []DayDescriptor{
			{
				DayNum: 1, Day: "Monday", Date: date(t, "2024-06-10"), AltLabel: "Workshops", Rooms: []int{0, 1},
				Timeslots: []TimeslotDescriptor{row("09:00", "17:00", "w1", "w2")},
			},
			{
				DayNum: 2, Day: "Tuesday", Date: date(t, "2024-06-11"), AltLabel: "More workshops", Rooms: []int{0, 1},
				Timeslots: []TimeslotDescriptor{row("09:00", "17:00", "w1", "w3")},
			},
		},
	}
}

func TestWorkshopDateRangeAcrossDays(t *testing.T) {
	s := mustBuild(t, Input{
		Year: 2024,
		Sources: [][]sessions.RawSession{{
			rec("w1", "Two Day Workshop", kind("workshop"), multi()),
			rec("w2", "Monday Workshop", kind("workshop")),
			rec("w3", "Tuesday Workshop", kind("workshop")),
		}},
		Descriptor: workshopDescriptor(t),
	})

	w1 := s.SessionsBySlug["two-day-workshop"]
	if len(w1.Days) != 2 {
		t.Fatalf("expected w1 on two days, got %d", len(w1.Days))
	}
	if want := "Monday, 10 June - Tuesday, 11 June 2024"; w1.DateRange != want {
		t.Fatalf("DateRange = %q, want %q", w1.DateRange, want)
	}

	if len(s.WorkshopGroups) != 3 {
		t.Fatalf("expected 3 workshop groups, got %d", len(s.WorkshopGroups))
	}
	wantGroups := []struct {
		name, dateRange string
		ids             []string
	}{
		{"Workshops", "Monday, 10 June - Tuesday, 11 June 2024", []string{"w1"}},
		{"Workshops", "Monday, 10 June 2024", []string{"w2"}},
		{"More workshops", "Tuesday, 11 June 2024", []string{"w3"}},
	}
	for i, want := range wantGroups {
		g := s.WorkshopGroups[i]
		if g.Name != want.name || g.DateRange != want.dateRange || len(g.Workshops) != len(want.ids) {
			t.Fatalf("group %d = {%q %q %d}, want {%q %q %d}", i, g.Name, g.DateRange, len(g.Workshops), want.name, want.dateRange, len(want.ids))
		}
		for j, id := range want.ids {
			if g.Workshops[j].ID != id {
				t.Fatalf("group %d workshop %d = %q, want %q", i, j, g.Workshops[j].ID, id)
			}
		}
	}
}

func TestWorkshopGroupsMergeSameDateRange(t *testing.T) {
	desc := workshopDescriptor(t)
	desc.Days[1].Timeslots = []TimeslotDescriptor{row("09:00", "17:00", "w3", "w4")}
	s := mustBuild(t, Input{
		Year: 2024,
		Sources: [][]sessions.RawSession{{
			rec("w1", "A", kind("workshop")),
			rec("w2", "B", kind("workshop")),
			rec("w3", "C", kind("workshop")),
			rec("w4", "D", kind("workshop")),
		}},
		Descriptor: desc,
	})
	if len(s.WorkshopGroups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(s.WorkshopGroups))
	}
	if len(s.WorkshopGroups[0].Workshops) != 2 || len(s.WorkshopGroups[1].Workshops) != 2 {
		t.Fatalf("unexpected group sizes %d / %d", len(s.WorkshopGroups[0].Workshops), len(s.WorkshopGroups[1].Workshops))
	}
	if s.WorkshopGroups[1].Name != "More workshops" {
		t.Fatalf("second group name = %q", s.WorkshopGroups[1].Name)
	}
}

func TestWorkshopGroupingFollowsDayNumber(t *testing.T) {
	desc := workshopDescriptor(t)
	// Listed out of order in the file; grouping still runs chronologically.
	desc.Days[0], desc.Days[1] = desc.Days[1], desc.Days[0]
	desc.Days[0].Timeslots = []TimeslotDescriptor{row("09:00", "17:00", "w3", "w4")}
	s := mustBuild(t, Input{
		Year: 2024,
		Sources: [][]sessions.RawSession{{
			rec("w1", "A", kind("workshop")),
			rec("w2", "B", kind("workshop")),
			rec("w3", "C", kind("workshop")),
			rec("w4", "D", kind("workshop")),
		}},
		Descriptor: desc,
	})
	if got := s.WorkshopGroups[0].Workshops[0].ID; got != "w1" {
		t.Fatalf("first grouped workshop = %q, want w1", got)
	}
}

func TestWorkshopDaysFollowDayNumber(t *testing.T) {
	desc := workshopDescriptor(t)
	desc.Days[0], desc.Days[1] = desc.Days[1], desc.Days[0]
	s := mustBuild(t, Input{
		Year: 2024,
		Sources: [][]sessions.RawSession{{
			rec("w1", "Two Day Workshop", kind("workshop"), multi()),
			rec("w2", "Monday Workshop", kind("workshop")),
			rec("w3", "Tuesday Workshop", kind("workshop")),
		}},
		Descriptor: desc,
	})

	w1 := s.SessionsBySlug["two-day-workshop"]
	if len(w1.Days) != 2 || w1.Days[0].DayNum != 1 || w1.Days[1].DayNum != 2 {
		t.Fatalf("w1 days out of order: %d days, first %d", len(w1.Days), w1.Days[0].DayNum)
	}
	if want := "Monday, 10 June - Tuesday, 11 June 2024"; w1.DateRange != want {
		t.Fatalf("DateRange = %q, want %q", w1.DateRange, want)
	}
	g := s.WorkshopGroups[0]
	if g.Name != "Workshops" || g.DateRange != w1.DateRange || g.Workshops[0] != w1 {
		t.Fatalf("first group = {%q %q}", g.Name, g.DateRange)
	}
}

func TestFormatDateRange(t *testing.T) {
	mk := func(name, dateStr string) *model.Day {
		return &model.Day{Name: name, DateStr: dateStr}
	}
	tests := []struct {
		name string
		days []*model.Day
		want string
	}{
		{"single", []*model.Day{mk("Monday", "10 June 2024")}, "Monday, 10 June 2024"},
		{"same month", []*model.Day{mk("Monday", "10 June 2024"), mk("Tuesday", "11 June 2024")}, "Monday, 10 June - Tuesday, 11 June 2024"},
		{"month change", []*model.Day{mk("Friday", "28 June 2024"), mk("Saturday", "29 June 2024"), mk("Monday", "1 July 2024")}, "Friday, 28 June - Monday, 1 July 2024"},
		{"year change", []*model.Day{mk("Tuesday", "31 December 2024"), mk("Wednesday", "1 January 2025")}, "Tuesday, 31 December 2024 - Wednesday, 1 January 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatDateRange(&model.SessionInstance{Days: tt.days})
			if err != nil {
				t.Fatalf("formatDateRange returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("formatDateRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDateRangeWithoutDays(t *testing.T) {
	_, err := formatDateRange(&model.SessionInstance{Slug: "lost"})
	var dayErr *MissingDayAssociationError
	if !errors.As(err, &dayErr) || dayErr.Slug != "lost" {
		t.Fatalf("expected MissingDayAssociationError, got %v", err)
	}
}
