// ABOUTME: RSS 2.0 XML structures for writing the feed document
// ABOUTME: Descriptions are emitted as CDATA so HTML fragments pass through unescaped

package feed

import (
	"encoding/xml"
	"strings"
)

// RSSVersion is written on the root element
const RSSVersion = "2.0"

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel channelXML `xml:"channel"`
}

type channelXML struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []itemXML `xml:"item"`
}

type itemXML struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description cdataXML `xml:"description"`
	PubDate     string   `xml:"pubDate"`
}

// cdataXML wraps text in a CDATA section. encoding/xml splits any "]]>" in
// the text across two sections, so the content always round-trips.
type cdataXML struct {
	Text string `xml:",cdata"`
}

// xmlText drops invalid UTF-8 and any rune outside the XML 1.0 Char range.
// encoding/xml writes CDATA and escaped text without checking either, and a
// document carrying them no longer parses on the next load.
func xmlText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
