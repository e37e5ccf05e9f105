// ABOUTME: Centralized configuration defaults for morningfeed
// ABOUTME: Contains the source site, feed file location, retention cap, and channel metadata

package config

import "time"

// Source and output settings
const (
	DefaultSourceURL  = "https://m.zhibo8.com/news.htm"
	DefaultOutputPath = "./football_morning_news.xml"
	DefaultMaxItems   = 50
	DefaultSanitize   = true
)

// HTTP settings
const (
	DefaultHTTPTimeout = 30 * time.Second
)

// Channel metadata
const (
	DefaultChannelTitle       = "直播8足球早报"
	DefaultChannelDescription = "Latest football morning news from Zhibo8"
)

// Display settings
const (
	DefaultShowLimit = 5
	SeparatorWidth   = 60
)

// Storage settings
const (
	DefaultFilePerms = 0644
)
