// ABOUTME: File-backed feed store owning the retention cap on the RSS document
// ABOUTME: Loads existing items through the gofeed parser, prepends and truncates, rewrites the file atomically

package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harper/morningfeed/internal/config"
	"github.com/harper/morningfeed/internal/fsutil"
	"github.com/harper/morningfeed/internal/models"
	"github.com/harper/morningfeed/internal/parse"
	"github.com/harper/morningfeed/internal/timeutil"
)

// ErrEmptyDocument is returned by Document for a zero-length feed file
var ErrEmptyDocument = errors.New("feed document is empty")

// Channel holds the static channel metadata written on every save
type Channel struct {
	Title       string
	Link        string
	Description string
}

// DefaultChannel returns the channel metadata for the football morning report feed
func DefaultChannel(link string) Channel {
	return Channel{
		Title:       config.DefaultChannelTitle,
		Link:        link,
		Description: config.DefaultChannelDescription,
	}
}

// Store reads and writes the feed document at Path.
type Store struct {
	Path    string
	Channel Channel
}

// NewStore creates a Store for the document at path
func NewStore(path string, channel Channel) *Store {
	return &Store{
		Path:    path,
		Channel: channel,
	}
}

// Load returns the entries of the persisted feed, newest first.
// A missing, empty, or unparseable document yields no entries rather than an error.
func (s *Store) Load() []models.FeedEntry {
	doc, err := s.Document()
	if err != nil {
		return []models.FeedEntry{}
	}
	return doc.Entries
}

// Document reads the persisted feed including its channel metadata.
func (s *Store) Document() (*parse.ParsedFeed, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	// gofeed trims surrounding whitespace, so a description with leading or
	// trailing newlines comes back shorter than it was written.
	parsed, err := parse.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return parsed, nil
}

// Merge prepends entry to existing and keeps at most maxItems entries, dropping from the tail.
// existing is never modified. maxItems <= 0 yields an empty feed.
func Merge(entry models.FeedEntry, existing []models.FeedEntry, maxItems int) []models.FeedEntry {
	if maxItems <= 0 {
		return []models.FeedEntry{}
	}

	n := len(existing) + 1
	if n > maxItems {
		n = maxItems
	}

	merged := make([]models.FeedEntry, 0, n)
	merged = append(merged, entry)
	for _, e := range existing {
		if len(merged) == n {
			break
		}
		merged = append(merged, e)
	}

	return merged
}

// Save writes entries wrapped in the channel envelope, replacing the document.
// The document is written to a temp file in the same directory and renamed into place.
func (s *Store) Save(entries []models.FeedEntry, now time.Time) error {
	data, err := s.render(entries, now)
	if err != nil {
		return err
	}

	return fsutil.AtomicWrite(s.Path, data, config.DefaultFilePerms)
}

// Append loads the current feed, merges entry under maxItems, and saves the result.
// Returns the feed as written.
func (s *Store) Append(entry models.FeedEntry, maxItems int, now time.Time) ([]models.FeedEntry, error) {
	merged := Merge(entry, s.Load(), maxItems)
	if err := s.Save(merged, now); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Store) render(entries []models.FeedEntry, now time.Time) ([]byte, error) {
	doc := rssXML{
		Version: RSSVersion,
		Channel: channelXML{
			Title:         xmlText(s.Channel.Title),
			Link:          xmlText(s.Channel.Link),
			Description:   xmlText(s.Channel.Description),
			LastBuildDate: timeutil.BuildStamp(now),
			Items:         make([]itemXML, len(entries)),
		},
	}

	for i, e := range entries {
		doc.Channel.Items[i] = itemXML{
			Title:       xmlText(e.Title),
			Link:        xmlText(e.Link),
			Description: cdataXML{Text: xmlText(e.Description)},
			PubDate:     xmlText(e.PubDate),
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}
