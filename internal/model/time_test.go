package model

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    Time
		wantErr bool
	}{
		{"09:00", Time{9, 0}, false},
		{"9:05", Time{9, 5}, false},
		{"23:59", Time{23, 59}, false},
		{" 13:30 ", Time{13, 30}, false},
		{"0930", Time{}, true},
		{"09:30:00", Time{}, true},
		{"ab:cd", Time{}, true},
		{"24:00", Time{}, true},
		{"12:60", Time{}, true},
		{"", Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				var timeErr *InvalidTimeFormatError
				if !errors.As(err, &timeErr) {
					t.Fatalf("ParseTime(%q) error = %v, want InvalidTimeFormatError", tt.in, err)
				}
				if timeErr.Value != tt.in {
					t.Fatalf("error value = %q, want %q", timeErr.Value, tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 7 {
			orig := Time{Hour: h, Minute: m}
			got, err := ParseTime(orig.String())
			if err != nil {
				t.Fatalf("ParseTime(%q): %v", orig.String(), err)
			}
			if got != orig {
				t.Fatalf("round trip %v -> %v", orig, got)
			}
		}
	}
}

func TestTimeOrdering(t *testing.T) {
	a := MustParseTime("09:59")
	b := MustParseTime("10:00")
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if a.Compare(a) != 0 {
		t.Fatal("expected equal compare")
	}
	if !a.Within(a, b) || !b.Within(a, b) || MustParseTime("10:01").Within(a, b) {
		t.Fatal("unexpected Within result")
	}
	if got := b.Minutes() - a.Minutes(); got != 1 {
		t.Fatalf("minute difference = %d, want 1", got)
	}
}

func TestUniqueSorted(t *testing.T) {
	in := []Time{{10, 0}, {9, 0}, {10, 0}, {9, 30}, {9, 0}}
	got := UniqueSorted(in)
	want := []Time{{9, 0}, {9, 30}, {10, 0}}
	if len(got) != len(want) {
		t.Fatalf("UniqueSorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniqueSorted() = %v, want %v", got, want)
		}
	}
	if IndexOf(got, Time{9, 30}) != 1 || IndexOf(got, Time{11, 0}) != -1 {
		t.Fatal("unexpected IndexOf result")
	}
}

func TestParseSessionKind(t *testing.T) {
	tests := []struct {
		in     string
		want   SessionKind
		prefix string
		ok     bool
	}{
		{"", KindSession, "", true},
		{"Workshop", KindWorkshop, "", true},
		{"break", KindBreak, "", true},
		{"keynote", KindKeynote, "KEYNOTE: ", true},
		{"sponsored", KindSponsored, "SPONSORED: ", true},
		{"panel", KindSession, "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSessionKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseSessionKind(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
		if got.TitlePrefix() != tt.prefix {
			t.Fatalf("%v.TitlePrefix() = %q, want %q", got, got.TitlePrefix(), tt.prefix)
		}
	}
}
