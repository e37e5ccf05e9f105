// ABOUTME: Content processing utilities for morning report descriptions
// ABOUTME: Sanitizes extracted HTML for the feed and converts it to Markdown for terminal display

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// policy keeps user-generated markup and the inline style forced onto
// repaired lazy images; scripts and event handlers are stripped.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style").OnElements("img")
	p.AllowStyles("display").MatchingEnum("inline", "block", "inline-block").OnElements("img")
	p.AllowStyles("height", "width").Matching(cssLength).OnElements("img")
	return p
}

var cssLength = regexp.MustCompile(`^(auto|\d+(\.\d+)?(px|%|em|rem)?)$`)

// Sanitize strips scripts, event handlers, and unsafe attributes from an HTML fragment
func Sanitize(content string) string {
	if content == "" {
		return content
	}
	return policy.Sanitize(content)
}

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	// Quick checks for obvious HTML markers
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}

	// Check for common HTML tags
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to Markdown
// If the content doesn't appear to be HTML, returns it unchanged
func ToMarkdown(content string) string {
	if content == "" {
		return content
	}

	if !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		// If conversion fails, return original content
		return content
	}

	// Clean up excessive whitespace
	markdown = strings.TrimSpace(markdown)

	return markdown
}
