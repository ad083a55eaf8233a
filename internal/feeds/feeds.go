package feeds

import (
	"context"
	"net/http"
	"strings"
	"time"

	"feedsync/internal/models"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"
)

// Source fetches entries for one configured feed.
type Source interface {
	// Fetch retrieves the feed for src and returns entries published strictly
	// after the watermark, filtered by the source's keywords.
	Fetch(ctx context.Context, src models.SourceConfig, watermark time.Time) ([]models.Entry, error)

	// Kind returns the source kind this implementation handles.
	Kind() models.SourceKind
}

// NewSources builds one Source per supported kind, keyed by kind.
func NewSources(client *http.Client, logger *log.Logger) map[models.SourceKind]Source {
	return map[models.SourceKind]Source{
		models.SourceMusicRelease: NewMusicReleaseSource(client, logger),
		models.SourceVideoChannel: NewVideoChannelSource(client, logger),
	}
}

// newParser creates a gofeed parser backed by the given HTTP client.
func newParser(client *http.Client) *gofeed.Parser {
	parser := gofeed.NewParser()
	if client != nil {
		parser.Client = client
	}
	return parser
}

// filterEntries normalizes raw feed items into entries.
//
// An item without a usable published or updated timestamp is dropped, never
// defaulted to "now". Timestamps equal to the watermark are excluded. When
// the source has keywords, the title must contain at least one of them as a
// case-sensitive substring. Feed order is preserved.
func filterEntries(items []*gofeed.Item, src models.SourceConfig, watermark time.Time, drop func(*gofeed.Item) bool, logger *log.Logger) []models.Entry {
	var entries []models.Entry

	for _, item := range items {
		published := item.PublishedParsed
		raw := item.Published
		if published == nil {
			published = item.UpdatedParsed
			raw = item.Updated
		}
		if published == nil {
			logger.Debug("dropping entry without timestamp", "source", src.Name, "title", item.Title)
			continue
		}

		ts := published.UTC()
		if !ts.After(watermark) {
			continue
		}

		if drop != nil && drop(item) {
			continue
		}

		if !matchesKeywords(item.Title, src.Keywords) {
			continue
		}

		entries = append(entries, models.Entry{
			Title:     item.Title,
			URL:       item.Link,
			Published: ts,
			Raw:       raw,
		})
	}

	return entries
}

// matchesKeywords reports whether title contains at least one keyword.
// An empty keyword list disables filtering rather than matching nothing.
func matchesKeywords(title string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
