// YouTube channel upload feed via youtube.com/feeds/videos.xml
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"feedsync/internal/models"
	"feedsync/internal/shared"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"
)

const defaultVideoBaseURL = "https://www.youtube.com/feeds/videos.xml"

// VideoChannelSource implements [Source] for YouTube channel upload feeds.
type VideoChannelSource struct {
	baseURL string
	parser  *gofeed.Parser
	logger  *log.Logger
}

// NewVideoChannelSource creates a video channel source using the given HTTP client.
func NewVideoChannelSource(client *http.Client, logger *log.Logger) *VideoChannelSource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &VideoChannelSource{
		baseURL: defaultVideoBaseURL,
		parser:  newParser(client),
		logger:  logger,
	}
}

func (s *VideoChannelSource) Kind() models.SourceKind {
	return models.SourceVideoChannel
}

// feedURL builds the upload feed URL for a channel ID.
func (s *VideoChannelSource) feedURL(channelID string) string {
	return s.baseURL + "?channel_id=" + url.QueryEscape(channelID)
}

// Fetch retrieves and filters the channel's upload feed. Shorts are excluded.
func (s *VideoChannelSource) Fetch(ctx context.Context, src models.SourceConfig, watermark time.Time) ([]models.Entry, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL(src.ID), ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %v", shared.ErrSourceUnavailable, src.Name, src.ID, err)
	}

	return filterEntries(feed.Items, src, watermark, isShort, s.logger), nil
}

// isShort reports whether an item links to a YouTube short.
func isShort(item *gofeed.Item) bool {
	return strings.Contains(strings.ToLower(item.Link), "short")
}
