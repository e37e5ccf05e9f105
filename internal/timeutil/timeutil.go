// ABOUTME: Time utility functions for the date stamps written into the feed
// ABOUTME: Entries carry date-only stamps; the channel build date adds a fixed time of day

package timeutil

import "time"

// DateLayout is the date-only stamp used for pubDate and link matching
const DateLayout = "2006-01-02"

// BuildTimeOfDay is appended to the date stamp to form lastBuildDate
const BuildTimeOfDay = "07:30"

// DateStamp formats t as YYYY-MM-DD
func DateStamp(t time.Time) string {
	return t.Format(DateLayout)
}

// BuildStamp formats t as "YYYY-MM-DD 07:30" for the channel lastBuildDate
func BuildStamp(t time.Time) string {
	return DateStamp(t) + " " + BuildTimeOfDay
}
