package match

import (
	"net/url"
	"strings"
)

// DirectMatchThreshold is the minimum score a candidate URL needs before it
// is accepted as a direct match instead of the fallback search link.
const DirectMatchThreshold = 6

// Storefront describes the URL conventions of one store, used by Score to
// hand out store-specific bonuses.
type Storefront struct {
	// TrackPathMarker is the path fragment a track page carries, e.g. "/track/".
	TrackPathMarker string
	// SlugSuffix is the host suffix below which artists get their own
	// subdomain, e.g. ".bandcamp.com".
	SlugSuffix string
}

// Bandcamp is the storefront convention for bandcamp.com artist pages.
var Bandcamp = Storefront{
	TrackPathMarker: "/track/",
	SlugSuffix:      ".bandcamp.com",
}

var penaltyWords = []string{"remix", "mix", "cover", "tribute", "edit", "karaoke"}

var liveWords = []string{"live", "concert"}

// Tokenize lowercases s, drops apostrophes, maps every character outside
// [a-z0-9\s-] to a space and splits on whitespace.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("'", "", "‘", "", "’", "").Replace(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Fields(b.String())
}

// Score rates a candidate result URL against a cleaned title and artist.
// Every rule is evaluated; the result is only meaningful relative to other
// candidates for the same track.
func Score(title, artist, rawURL string, store Storefront) int {
	lowered := strings.ToLower(rawURL)

	// Only the first credited artist drives matching; featured artists
	// rarely appear in storefront URLs.
	firstArtist := artist
	if idx := strings.Index(firstArtist, ","); idx >= 0 {
		firstArtist = firstArtist[:idx]
	}
	artistTokens := Tokenize(firstArtist)

	score := 0
	for _, token := range artistTokens {
		if strings.Contains(lowered, token) {
			score += 2
		}
	}
	for _, token := range Tokenize(title) {
		if strings.Contains(lowered, token) {
			score++
		}
	}

	for _, word := range penaltyWords {
		if strings.Contains(lowered, word) {
			score -= 3
			break
		}
	}
	for _, word := range liveWords {
		if strings.Contains(lowered, word) {
			score--
			break
		}
	}

	if u, err := url.Parse(lowered); err == nil {
		if store.TrackPathMarker != "" && strings.Contains(u.Path, store.TrackPathMarker) {
			score += 2
		}
		if store.SlugSuffix != "" && len(artistTokens) > 0 {
			slug := strings.Join(artistTokens, "-")
			if u.Hostname() == slug+store.SlugSuffix {
				score += 3
			}
		}
	}

	return score
}
