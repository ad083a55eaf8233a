// Apple Music release feed via the rss-bridge AppleMusicBridge Atom endpoint
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"feedsync/internal/models"
	"feedsync/internal/shared"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"
)

const defaultMusicBaseURL = "https://rss-bridge.org/bridge01/"

// MusicReleaseSource implements [Source] for Apple Music artist release feeds.
type MusicReleaseSource struct {
	baseURL string
	parser  *gofeed.Parser
	logger  *log.Logger
}

// NewMusicReleaseSource creates a music release source using the given HTTP client.
func NewMusicReleaseSource(client *http.Client, logger *log.Logger) *MusicReleaseSource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MusicReleaseSource{
		baseURL: defaultMusicBaseURL,
		parser:  newParser(client),
		logger:  logger,
	}
}

func (s *MusicReleaseSource) Kind() models.SourceKind {
	return models.SourceMusicRelease
}

// feedURL builds the rss-bridge Atom URL for an artist ID.
func (s *MusicReleaseSource) feedURL(artistID string) string {
	query := url.Values{}
	query.Set("action", "display")
	query.Set("bridge", "AppleMusicBridge")
	query.Set("artist", artistID)
	query.Set("limit", "10")
	query.Set("format", "Atom")
	return s.baseURL + "?" + query.Encode()
}

// Fetch retrieves and filters the artist's release feed.
func (s *MusicReleaseSource) Fetch(ctx context.Context, src models.SourceConfig, watermark time.Time) ([]models.Entry, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL(src.ID), ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %v", shared.ErrSourceUnavailable, src.Name, src.ID, err)
	}

	return filterEntries(feed.Items, src, watermark, nil, s.logger), nil
}
