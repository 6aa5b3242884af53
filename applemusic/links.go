package applemusic

import (
	"fmt"
	"strings"
)

// buildDeepLinks assembles legacy store deep links for a search result,
// most specific first so a client can attempt each in turn: album+track
// view, album-by-id view, song view. Each uses a different legacy scheme
// variant since support differs across OS generations.
func buildDeepLinks(result SearchResult, country string) []string {
	country = strings.ToLower(country)

	if result.TrackID != 0 && result.CollectionID != 0 {
		return []string{
			fmt.Sprintf("itmss://itunes.apple.com/%s/album/%d?i=%d", country, result.CollectionID, result.TrackID),
			fmt.Sprintf("itms://itunes.apple.com/%s/album/id%d", country, result.CollectionID),
			fmt.Sprintf("music://itunes.apple.com/%s/song/id%d", country, result.TrackID),
		}
	}

	if result.CollectionID != 0 {
		return []string{
			fmt.Sprintf("itmss://itunes.apple.com/%s/album/id%d", country, result.CollectionID),
		}
	}

	return nil
}
