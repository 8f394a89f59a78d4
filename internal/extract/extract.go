// Package extract infers structured fields from free-text product titles.
//
// The patterns are last-resort heuristics over third-party text and are
// expected to misfire on unusual titles.
package extract

import (
	"regexp"
	"strings"
)

// Brand patterns, tried in order
var brandPatterns = []*regexp.Regexp{
	// Text before the first comma
	regexp.MustCompile(`^([^,]+),`),
	// Leading token up to a hyphen, comma or whitespace
	regexp.MustCompile(`^([^-\s,]+)`),
}

// Distillery patterns, tried in order
var distilleryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)distilled by ([^,]+)`),
	regexp.MustCompile(`(?i)distillery: ([^,]+)`),
	regexp.MustCompile(`(?i)at ([^,]+) distillery`),
}

// Brand guesses the brand from a product title.
// It returns false when the title is empty or no pattern yields a non-empty match.
func Brand(title string) (string, bool) {
	return firstMatch(brandPatterns, title)
}

// Distillery looks for an explicit distillery phrase in a product title
// ("distilled by X", "distillery: X", "at X distillery").
func Distillery(title string) (string, bool) {
	return firstMatch(distilleryPatterns, title)
}

// firstMatch runs patterns against the trimmed input and returns the first non-empty capture
func firstMatch(patterns []*regexp.Regexp, s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, p := range patterns {
		m := p.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}
