package match

import "testing"

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain",
			title: "Song",
			want:  "Song",
		},
		{
			name:  "parenthetical",
			title: "Song (feat. Someone)",
			want:  "Song",
		},
		{
			name:  "bracketed",
			title: "Song [Bonus Track]",
			want:  "Song",
		},
		{
			name:  "dash descriptor",
			title: "Song - Remastered 2011",
			want:  "Song",
		},
		{
			name:  "kitchen sink",
			title: "Song (Live) - 2019 Remaster",
			want:  "Song",
		},
		{
			name:  "bare year",
			title: "Song 1984",
			want:  "Song",
		},
		{
			name:  "year kept when out of range",
			title: "Song 1899",
			want:  "Song 1899",
		},
		{
			name:  "noise word truncates to end",
			title: "Song Deluxe Edition Whatever",
			want:  "Song",
		},
		{
			name:  "noise word must be whole word",
			title: "Alive",
			want:  "Alive",
		},
		{
			name:  "spatial audio suffix",
			title: "Song Spatial Audio",
			want:  "Song",
		},
		{
			name:  "whitespace collapsed",
			title: "  Song   Two  ",
			want:  "Song Two",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q; want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestCleanTitleIdempotent(t *testing.T) {
	titles := []string{
		"Song (Live) - 2019 Remaster",
		"Another One [Demo] (Mono)",
		"Plain Title",
	}
	for _, title := range titles {
		once := CleanTitle(title)
		twice := CleanTitle(once)
		if once != twice {
			t.Errorf("CleanTitle not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
