package market

import (
	"fmt"
	"net/url"
	"strings"
)

// Marketplace identifiers for CS2 items
const (
	AppID     = 730
	ContextID = 2
)

// BaseURL is the bulk-listing page the deep link opens
var BaseURL = fmt.Sprintf("https://steamcommunity.com/market/multisell?appid=%d&contextid=%d", AppID, ContextID)

// itemsParam is "items[]=" percent-encoded
const itemsParam = "items%5B%5D="

// MultisellURL appends one items[] entry per name to the bulk-listing URL,
// preserving order and repeats
func MultisellURL(items []string) string {
	return MultisellURLFrom(BaseURL, items)
}

// MultisellURLFrom is MultisellURL against a custom base
func MultisellURLFrom(base string, items []string) string {
	if len(items) == 0 {
		return base
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, itemsParam+encodeComponent(item))
	}
	return base + "&" + strings.Join(parts, "&")
}

// componentUnescaper restores the characters encodeURIComponent leaves as is
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes like a browser's encodeURIComponent
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
