// ABOUTME: NewsItem model representing one morning report picked for the feed
// ABOUTME: Built fresh on every run and discarded once it has been formatted

package models

// NewsItem is a single logical news item produced by a pipeline run.
// Description is a raw HTML fragment and is never escaped.
type NewsItem struct {
	Title       string
	URL         string
	Description string
}

// NewNewsItem creates a NewsItem with the given fields
func NewNewsItem(title, url, description string) *NewsItem {
	return &NewsItem{
		Title:       title,
		URL:         url,
		Description: description,
	}
}
