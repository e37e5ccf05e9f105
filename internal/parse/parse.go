// ABOUTME: RSS/Atom feed parsing using gofeed library
// ABOUTME: Reads an existing feed document back into FeedEntry values with fields kept verbatim

package parse

import (
	"github.com/mmcdole/gofeed"

	"github.com/harper/morningfeed/internal/models"
)

// ParsedFeed represents a parsed feed document
type ParsedFeed struct {
	Title         string
	Link          string
	Description   string
	LastBuildDate string
	Entries       []models.FeedEntry
}

// Parse parses RSS or Atom feed data and returns its entries in document order.
// Dates are kept as the raw strings found in the document.
func Parse(data []byte) (*ParsedFeed, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, err
	}

	parsed := &ParsedFeed{
		Title:         feed.Title,
		Link:          feed.Link,
		Description:   feed.Description,
		LastBuildDate: feed.Updated,
		Entries:       make([]models.FeedEntry, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		entry := models.FeedEntry{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			PubDate:     item.Published,
		}

		// Fall back to full content when there is no description
		if entry.Description == "" {
			entry.Description = item.Content
		}

		// Atom entries may only carry an updated stamp
		if entry.PubDate == "" {
			entry.PubDate = item.Updated
		}

		// An empty <item/> carries nothing worth keeping
		if entry.IsZero() {
			continue
		}

		parsed.Entries = append(parsed.Entries, entry)
	}

	return parsed, nil
}
