// ABOUTME: Tests for the file-backed feed store and retention cap
// ABOUTME: Covers load of missing/corrupt files, prepend and truncation order, and CDATA round-trips

package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/morningfeed/internal/models"
)

var testNow = time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)

func entry(name string) models.FeedEntry {
	return models.FeedEntry{
		Title:       name,
		Link:        "https://m.example.com/zuqiu/" + name + ".htm",
		Description: "<p>" + name + "</p>",
		PubDate:     "2026-10-17",
	}
}

func titles(entries []models.FeedEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "feed.xml"), DefaultChannel("https://m.example.com/news.htm"))
}

func TestLoad_Missing(t *testing.T) {
	s := newTestStore(t)

	entries := s.Load()
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoad_EmptyAndCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty file", data: ""},
		{name: "garbage", data: "this is not a feed"},
		{name: "truncated xml", data: `<?xml version="1.0"?><rss version="2.0"><channel><item><title>x`},
		{name: "no items", data: `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path, []byte(tt.data), 0644))

			assert.Empty(t, s.Load())
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		max      int
		want     []string
	}{
		{name: "empty feed becomes singleton", existing: nil, max: 50, want: []string{"D"}},
		{name: "under cap", existing: []string{"A", "B"}, max: 50, want: []string{"D", "A", "B"}},
		{name: "at cap drops oldest", existing: []string{"A", "B", "C"}, max: 3, want: []string{"D", "A", "B"}},
		{name: "over cap truncates tail", existing: []string{"A", "B", "C", "E"}, max: 2, want: []string{"D", "A"}},
		{name: "cap one keeps newest", existing: []string{"A"}, max: 1, want: []string{"D"}},
		{name: "cap zero empties", existing: []string{"A"}, max: 0, want: []string{}},
		{name: "negative cap empties", existing: []string{"A"}, max: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := make([]models.FeedEntry, len(tt.existing))
			for i, n := range tt.existing {
				existing[i] = entry(n)
			}
			before := titles(existing)

			got := Merge(entry("D"), existing, tt.max)

			assert.Equal(t, tt.want, titles(got))
			assert.Equal(t, before, titles(existing), "existing must not be modified")
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := []models.FeedEntry{
		{
			Title:       "2026-10-17 足球早报：曼联 & 利物浦",
			Link:        "https://m.example.com/zuqiu/2026-10-17/a.htm?x=1&y=2",
			Description: `<p>第一段</p><img src="https://img.example.com/a.jpg" style="display: inline; height: 100%;"/>`,
			PubDate:     "2026-10-17",
		},
		entry("older"),
	}

	require.NoError(t, s.Save(want, testNow))

	assert.Equal(t, want, s.Load())
}

func TestSave_Document(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]models.FeedEntry{entry("A")}, testNow))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	doc := string(data)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `<rss version="2.0">`)
	assert.Contains(t, doc, "<title>直播8足球早报</title>")
	assert.Contains(t, doc, "<link>https://m.example.com/news.htm</link>")
	assert.Contains(t, doc, "<description>Latest football morning news from Zhibo8</description>")
	assert.Contains(t, doc, "<lastBuildDate>2026-10-17 07:30</lastBuildDate>")
	assert.Contains(t, doc, "<description><![CDATA[<p>A</p>]]></description>")
	assert.Contains(t, doc, "<pubDate>2026-10-17</pubDate>")
}

func TestSave_EscapesTitleNotDescription(t *testing.T) {
	s := newTestStore(t)
	e := models.FeedEntry{
		Title:       "<b>bold</b>",
		Link:        "https://m.example.com/?a=1&b=2",
		Description: "<b>bold</b>",
		PubDate:     "2026-10-17",
	}
	require.NoError(t, s.Save([]models.FeedEntry{e}, testNow))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "<title>&lt;b&gt;bold&lt;/b&gt;</title>")
	assert.Contains(t, doc, "<link>https://m.example.com/?a=1&amp;b=2</link>")
	assert.Contains(t, doc, "<![CDATA[<b>bold</b>]]>")
}

func TestLoad_NestedItemMarkersInDescription(t *testing.T) {
	s := newTestStore(t)
	tricky := []models.FeedEntry{
		{Title: "one", Link: "https://m.example.com/1", Description: "<item><title>fake</title></item> text </item>", PubDate: "2026-10-17"},
		{Title: "two", Link: "https://m.example.com/2", Description: "contains ]]> terminator and <description>", PubDate: "2026-10-16"},
		{Title: "three", Link: "https://m.example.com/3", Description: "<div><item>nested<item>twice</item></item></div>", PubDate: "2026-10-15"},
	}

	require.NoError(t, s.Save(tricky, testNow))

	loaded := s.Load()
	require.Len(t, loaded, len(tricky))
	assert.Equal(t, tricky, loaded)
}

func TestAppend_CapInvariantAcrossRuns(t *testing.T) {
	s := newTestStore(t)
	const maxItems = 3

	for run := 0; run < 6; run++ {
		prior := len(s.Load())
		written, err := s.Append(entry(fmt.Sprintf("run-%d", run)), maxItems, testNow)
		require.NoError(t, err)

		want := prior + 1
		if want > maxItems {
			want = maxItems
		}
		assert.Len(t, written, want)

		loaded := s.Load()
		assert.Len(t, loaded, want)
		assert.Equal(t, fmt.Sprintf("run-%d", run), loaded[0].Title, "newest entry must be first")
	}

	assert.Equal(t, []string{"run-5", "run-4", "run-3"}, titles(s.Load()))
}

func TestAppend_Scenario(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]models.FeedEntry{entry("A"), entry("B"), entry("C")}, testNow))

	written, err := s.Append(entry("D"), 3, testNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"D", "A", "B"}, titles(written))
	assert.Equal(t, []string{"D", "A", "B"}, titles(s.Load()))
}

func TestAppend_RecoversFromCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("<rss><channel><item>broken"), 0644))

	written, err := s.Append(entry("A"), 50, testNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, titles(written))
	assert.Equal(t, []string{"A"}, titles(s.Load()))
}

func TestSave_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := NewStore(filepath.Join(blocker, "feed.xml"), DefaultChannel("https://m.example.com/news.htm"))
	assert.Error(t, s.Save([]models.FeedEntry{entry("A")}, testNow))
}

func TestAppend_DropsBytesXMLCannotCarry(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"C", "B", "A"} {
		_, err := s.Append(entry(name), 50, testNow)
		require.NoError(t, err)
	}

	bad := models.FeedEntry{
		Title:       "bad\x08title\xff",
		Link:        "https://m.example.com/zuqiu/\x01bad.htm",
		Description: "<p>a\x08b\xffc\x00d\uFFFEe</p>",
		PubDate:     "2026-10-17",
	}
	_, err := s.Append(bad, 50, testNow)
	require.NoError(t, err)

	loaded := s.Load()
	require.Equal(t, []string{"badtitle", "A", "B", "C"}, titles(loaded), "prior entries must survive")
	assert.Equal(t, "https://m.example.com/zuqiu/bad.htm", loaded[0].Link)
	assert.Equal(t, "<p>abcde</p>", loaded[0].Description)

	written, err := s.Append(entry("E"), 50, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"E", "badtitle", "A", "B", "C"}, titles(written))
	assert.Equal(t, titles(written), titles(s.Load()))
}

func TestXMLText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "足球早报 <p>x</p>", want: "足球早报 <p>x</p>"},
		{name: "whitespace kept", in: "a\tb\nc\rd", want: "a\tb\nc\rd"},
		{name: "control chars", in: "a\x00b\x08c\x1fd", want: "abcd"},
		{name: "invalid utf8", in: "a\xffb\xc3", want: "ab"},
		{name: "noncharacters", in: "a\uFFFEb\uFFFFc", want: "abc"},
		{name: "astral", in: "goal \U0001F600", want: "goal \U0001F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, xmlText(tt.in))
		})
	}
}

func TestDocument_ChannelMetadata(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Document()
	assert.Error(t, err, "missing file")

	require.NoError(t, os.WriteFile(s.Path, nil, 0644))
	_, err = s.Document()
	assert.ErrorIs(t, err, ErrEmptyDocument)

	require.NoError(t, s.Save([]models.FeedEntry{entry("A"), entry("B")}, testNow))

	doc, err := s.Document()
	require.NoError(t, err)
	assert.Equal(t, s.Channel.Title, doc.Title)
	assert.Equal(t, s.Channel.Link, doc.Link)
	assert.Equal(t, s.Channel.Description, doc.Description)
	assert.Equal(t, "2026-10-17 07:30", doc.LastBuildDate)
	assert.Equal(t, []string{"A", "B"}, titles(doc.Entries))
}

func TestLoad_TrimsSurroundingWhitespace(t *testing.T) {
	s := newTestStore(t)
	e := entry("A")
	e.Description = "\n  <p>body</p>\n"
	require.NoError(t, s.Save([]models.FeedEntry{e}, testNow))

	loaded := s.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, "<p>body</p>", loaded[0].Description)
}
