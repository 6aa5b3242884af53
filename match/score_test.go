package match

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Hello World", []string{"hello", "world"}},
		{"apostrophes dropped", "Don't Stop", []string{"dont", "stop"}},
		{"curly apostrophe", "Don’t", []string{"dont"}},
		{"punctuation to space", "AC/DC!", []string{"ac", "dc"}},
		{"hyphen kept", "twenty-one", []string{"twenty-one"}},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestScoreDirectMatch(t *testing.T) {
	score := Score("Song", "Band", "https://band.bandcamp.com/track/song", Bandcamp)
	// artist token (+2), title token (+1), track page (+2), artist slug (+3)
	if score < DirectMatchThreshold {
		t.Errorf("Score = %d; want >= %d", score, DirectMatchThreshold)
	}
	if score != 8 {
		t.Errorf("Score = %d; want 8", score)
	}
}

func TestScoreRemixPenalty(t *testing.T) {
	clean := Score("Song", "Band", "https://band.bandcamp.com/track/song", Bandcamp)
	remix := Score("Song", "Band", "https://band.bandcamp.com/track/song-remix", Bandcamp)
	if clean-remix < 3 {
		t.Errorf("remix URL scored %d vs clean %d; want at least 3 lower", remix, clean)
	}
}

func TestScoreLivePenalty(t *testing.T) {
	clean := Score("Song", "Band", "https://other.bandcamp.com/track/song", Bandcamp)
	live := Score("Song", "Band", "https://other.bandcamp.com/track/song-live", Bandcamp)
	if clean-live != 1 {
		t.Errorf("live URL scored %d vs clean %d; want exactly 1 lower", live, clean)
	}
}

func TestScoreFirstArtistOnly(t *testing.T) {
	// Tokens from the second comma-joined artist must not contribute.
	withBoth := Score("Song", "Band, Zzqx", "https://band.bandcamp.com/track/song-zzqx", Bandcamp)
	firstOnly := Score("Song", "Band", "https://band.bandcamp.com/track/song-zzqx", Bandcamp)
	if withBoth != firstOnly {
		t.Errorf("second artist affected score: %d != %d", withBoth, firstOnly)
	}
}

func TestScoreNoSlugWithoutExactHost(t *testing.T) {
	exact := Score("Song", "Band", "https://band.bandcamp.com/track/song", Bandcamp)
	other := Score("Song", "Band", "https://bandcamp.com/track/song", Bandcamp)
	if exact-other != 3 {
		t.Errorf("slug bonus delta = %d; want 3", exact-other)
	}
}
