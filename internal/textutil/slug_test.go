package textutil

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Opening Keynote", "opening-keynote"},
		{"punctuation", "Café & Go: Concurrency!", "cafe-go-concurrency"},
		{"apostrophe", "What's new in C++?", "whats-new-in-c"},
		{"leading and trailing", "  --Lunch--  ", "lunch"},
		{"digits", "C++20 in 2024", "c-20-in-2024"},
		{"mixed scripts", "Hello 世界", "hello-世界"},
		{"cyrillic", "Привет мир", "привет-мир"},
		{"greek accents", "Καλημέρα Go", "καλημερα-go"},
		{"kana keeps voicing", "日本語のトーク: ガイド", "日本語のトーク-ガイド"},
		{"symbols only", "!!! ???", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
