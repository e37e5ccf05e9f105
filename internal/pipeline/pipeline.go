// ABOUTME: Pipeline driver for one run: fetch index, pick the morning report, extract, format, persist
// ABOUTME: Every fetch or extraction failure still ends in exactly one persisted entry

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/harper/morningfeed/internal/content"
	"github.com/harper/morningfeed/internal/extract"
	"github.com/harper/morningfeed/internal/feed"
	"github.com/harper/morningfeed/internal/models"
	"github.com/harper/morningfeed/internal/timeutil"
)

// Sentinel text written when the report cannot be produced
const (
	NotFoundTitle       = "未查询到早报"
	NotFoundDescription = "未能找到符合条件的早报链接。"
	ExtractionFailed    = "内容获取失败"
	ErrorTitle          = "查询直播吧早报出错"
)

// Status describes which path a run took
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// Getter retrieves a page body. *fetch.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Outcome reports what a run persisted
type Outcome struct {
	Status         Status
	Item           models.NewsItem
	Entry          models.FeedEntry
	Total          int   // entries in the feed after the save
	ContentMissing bool  // article found but its content container was not
	Err            error // fetch or extraction failure behind a StatusError entry
}

// Driver runs the pipeline against a Getter and a feed Store.
type Driver struct {
	Getter    Getter
	Store     *feed.Store
	SourceURL string
	MaxItems  int
	Sanitize  bool
	Now       func() time.Time
}

// NewDriver creates a Driver with sanitizing on and the wall clock
func NewDriver(getter Getter, store *feed.Store, sourceURL string, maxItems int) *Driver {
	return &Driver{
		Getter:    getter,
		Store:     store,
		SourceURL: sourceURL,
		MaxItems:  maxItems,
		Sanitize:  true,
		Now:       time.Now,
	}
}

// Run performs one pipeline invocation. Fetch and extraction failures are
// turned into an error entry and never returned; the returned error is
// non-nil only when the feed could not be written.
func (d *Driver) Run(ctx context.Context) (*Outcome, error) {
	if d.Store == nil {
		return nil, errors.New("pipeline has no feed store")
	}

	now := d.now()
	date := timeutil.DateStamp(now)

	out := &Outcome{}
	item, status, missing, err := d.fetchItem(ctx, date)
	if err != nil {
		item = models.NewNewsItem(ErrorTitle, d.SourceURL, err.Error())
		status = StatusError
		out.Err = err
	}
	out.Status = status
	out.ContentMissing = missing

	entry, err := feed.Format(item, date)
	if err != nil {
		return nil, fmt.Errorf("failed to format entry: %w", err)
	}

	written, err := d.Store.Append(entry, d.MaxItems, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update feed: %w", err)
	}

	out.Item = *item
	out.Entry = entry
	out.Total = len(written)
	return out, nil
}

// fetchItem produces the day's NewsItem. A non-nil error means the caller
// must fall back to the error entry.
func (d *Driver) fetchItem(ctx context.Context, date string) (item *models.NewsItem, status Status, contentMissing bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, status, contentMissing = nil, StatusError, false
			err = fmt.Errorf("unexpected document shape: %v", r)
		}
	}()

	if d.Getter == nil {
		return nil, StatusError, false, errors.New("pipeline has no page fetcher")
	}

	base, err := url.Parse(d.SourceURL)
	if err != nil {
		return nil, StatusError, false, fmt.Errorf("invalid source URL: %w", err)
	}

	body, err := d.Getter.Get(ctx, d.SourceURL)
	if err != nil {
		return nil, StatusError, false, fmt.Errorf("failed to fetch index: %w", err)
	}

	index, err := extract.ParseDocument(body)
	if err != nil {
		return nil, StatusError, false, fmt.Errorf("failed to parse index: %w", err)
	}

	link, ok := extract.FindMorningLink(index, date, base)
	if !ok {
		return models.NewNewsItem(date+" "+NotFoundTitle, "", NotFoundDescription), StatusNotFound, false, nil
	}

	body, err = d.Getter.Get(ctx, link.URL)
	if err != nil {
		return nil, StatusError, false, fmt.Errorf("failed to fetch article: %w", err)
	}

	article, err := extract.ParseDocument(body)
	if err != nil {
		return nil, StatusError, false, fmt.Errorf("failed to parse article: %w", err)
	}

	extract.FixLazyImages(article)

	description, ok := extract.ContentHTML(article)
	switch {
	case !ok:
		description = ExtractionFailed
		contentMissing = true
	case d.Sanitize:
		description = content.Sanitize(description)
	}

	return models.NewNewsItem(date+" "+link.Text, link.URL, description), StatusFound, contentMissing, nil
}

func (d *Driver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
