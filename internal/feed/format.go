// ABOUTME: Entry formatter turning a NewsItem into a FeedEntry
// ABOUTME: Pure rendering with a date-only publish stamp; no network or disk access

package feed

import (
	"errors"

	"github.com/harper/morningfeed/internal/models"
)

// ErrNilItem is returned when Format is handed no item
var ErrNilItem = errors.New("nil news item")

// Format renders item into a FeedEntry stamped with date (YYYY-MM-DD).
// Title and link are plain text and are escaped on write; the description is
// an HTML fragment and is written verbatim inside CDATA. Bytes that cannot
// appear in an XML document are dropped from every field.
func Format(item *models.NewsItem, date string) (models.FeedEntry, error) {
	if item == nil {
		return models.FeedEntry{}, ErrNilItem
	}

	return models.FeedEntry{
		Title:       xmlText(item.Title),
		Link:        xmlText(item.URL),
		Description: xmlText(item.Description),
		PubDate:     xmlText(date),
	}, nil
}
