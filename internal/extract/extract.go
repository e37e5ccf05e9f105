// ABOUTME: HTML extraction for the morning report: link selection, lazy image repair, content capture
// ABOUTME: Parses pages with golang.org/x/net/html and queries them through goquery

package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Matching and extraction rules for the source site
const (
	TopicToken      = "zuqiu"
	CategoryToken   = "早报"
	ContentSelector = ".content"
	LazySrcAttr     = "t-rc"
)

// ErrNoDocument is returned when a page body is empty
var ErrNoDocument = errors.New("empty HTML document")

// Link is an anchor selected from the index page
type Link struct {
	Href string // raw href attribute
	Text string // trimmed anchor text
	URL  string // href resolved against the index URL
}

// ParseDocument parses an HTML page into a goquery document
func ParseDocument(body []byte) (*goquery.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNoDocument
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return goquery.NewDocumentFromNode(root), nil
}

// FindMorningLink returns the first anchor, in document order, whose href contains
// both TopicToken and date and whose text contains CategoryToken.
// The href is resolved against base when base is non-nil.
func FindMorningLink(doc *goquery.Document, date string, base *url.URL) (*Link, bool) {
	var found *Link

	doc.Find("a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}

		text := s.Text()
		if !strings.Contains(href, TopicToken) || !strings.Contains(href, date) || !strings.Contains(text, CategoryToken) {
			return true
		}

		found = &Link{
			Href: href,
			Text: strings.TrimSpace(text),
			URL:  resolveURL(href, base),
		}
		return false
	})

	return found, found != nil
}

// FixLazyImages rewrites every img carrying LazySrcAttr so it renders without
// script: src takes the lazy value, onload is dropped, and the image is forced visible.
// Returns the number of images rewritten.
func FixLazyImages(doc *goquery.Document) int {
	fixed := 0

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		lazySrc, ok := s.Attr(LazySrcAttr)
		if !ok || lazySrc == "" {
			return
		}

		s.RemoveAttr("onload")
		style, _ := s.Attr("style")
		s.SetAttr("style", setStyle(style, [][2]string{
			{"display", "inline"},
			{"height", "100%"},
		}))
		s.SetAttr("src", lazySrc)
		fixed++
	})

	return fixed
}

// ContentHTML returns the inner HTML of the first ContentSelector element.
// Reports false when the element is missing or empty.
func ContentHTML(doc *goquery.Document) (string, bool) {
	sel := doc.Find(ContentSelector).First()
	if sel.Length() == 0 {
		return "", false
	}

	content, err := sel.Html()
	if err != nil || content == "" {
		return "", false
	}

	return content, true
}

// resolveURL resolves a potentially relative URL against a base URL
func resolveURL(href string, base *url.URL) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// setStyle overrides or appends CSS declarations in an inline style attribute,
// keeping unrelated declarations in their original order.
func setStyle(style string, props [][2]string) string {
	var decls []string
	seen := make(map[string]bool)

	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}

		name, _, _ := strings.Cut(decl, ":")
		name = strings.ToLower(strings.TrimSpace(name))

		replaced := false
		for _, p := range props {
			if p[0] == name {
				decls = append(decls, p[0]+": "+p[1])
				seen[name] = true
				replaced = true
				break
			}
		}
		if !replaced {
			decls = append(decls, decl)
		}
	}

	for _, p := range props {
		if !seen[p[0]] {
			decls = append(decls, p[0]+": "+p[1])
		}
	}

	return strings.Join(decls, "; ") + ";"
}
