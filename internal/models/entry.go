// ABOUTME: FeedEntry model representing one serialized item of the RSS feed
// ABOUTME: Fields are stored verbatim; PubDate is a date-only stamp (YYYY-MM-DD)

package models

// FeedEntry is one item of the persisted feed.
// The store never interprets these fields, it only writes them back out.
type FeedEntry struct {
	Title       string
	Link        string
	Description string
	PubDate     string
}

// IsZero reports whether the entry carries no data at all
func (e FeedEntry) IsZero() bool {
	return e.Title == "" && e.Link == "" && e.Description == "" && e.PubDate == ""
}
