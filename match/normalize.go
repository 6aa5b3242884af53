// Package match holds the title-cleaning and candidate-scoring heuristics
// used to line up Spotify tracks with storefront search results.
package match

import (
	"regexp"
	"strings"
)

var (
	parensRegex     = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	yearRegex       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	noiseWordRegex  = regexp.MustCompile(`(?i)\b(remastered|remaster|remix|live|mono|stereo|edit|version|deluxe|spatial|atmos)\b.*$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// CleanTitle strips release noise from a raw track title so it can be used
// as a search query. The rules run in a fixed order: parenthesized segments
// first, then the trailing " - " descriptor, then bare year stamps, then
// everything from the first noise word onward.
func CleanTitle(title string) string {
	title = parensRegex.ReplaceAllString(title, " ")

	if idx := strings.Index(title, " - "); idx >= 0 {
		title = title[:idx]
	}

	title = yearRegex.ReplaceAllString(title, " ")
	title = noiseWordRegex.ReplaceAllString(title, " ")

	title = whitespaceRegex.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}
