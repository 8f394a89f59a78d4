package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSearchQueryLen bounds the cleaned query handed to the catalog
const maxSearchQueryLen = 100

// Compiled regex patterns for search query cleaning
var (
	// Matches bottle sizes like "700ml", "70 cl", "1.75 L", "750 mL"
	bottleSizePattern = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(ml|cl|l|liters?|litres?)\b`)

	// Matches strength like "40%", "46.3% abv", "86 proof"
	strengthPattern = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*%(\s*(abv|vol))?|\b\d+(\.\d+)?\s*proof\b`)

	// Matches lone punctuation left behind after removals
	orphanPunctuationPattern = regexp.MustCompile(`(^|\s)[,\-;:/]+(\s|$)`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// searchNoiseWords never narrow down a catalog search
var searchNoiseWords = map[string]bool{
	// Packaging
	"bottle": true,
	"gift":   true,
	"box":    true,
	"tin":    true,
	"tube":   true,
	"pack":   true,

	// Marketing
	"new":     true,
	"premium": true,
	"finest":  true,
	"genuine": true,
	"edition": true,
}

// cleanSearchQuery normalizes free text typed into catalog search.
// It drops bottle sizes, strength markers and packaging terms, then collapses whitespace.
func cleanSearchQuery(q string) string {
	if strings.TrimSpace(q) == "" {
		return ""
	}

	cleaned := bottleSizePattern.ReplaceAllString(q, " ")
	cleaned = strengthPattern.ReplaceAllString(cleaned, " ")
	cleaned = removeNoiseWords(cleaned)
	cleaned = cleanOrphanedPunctuation(cleaned)
	cleaned = strings.TrimSpace(multiSpacePattern.ReplaceAllString(cleaned, " "))

	if len(cleaned) > maxSearchQueryLen {
		// Cut on a rune boundary
		n := maxSearchQueryLen
		for n > 0 && !utf8.RuneStart(cleaned[n]) {
			n--
		}
		cleaned = cleaned[:n]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxSearchQueryLen/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	return cleaned
}

// removeNoiseWords removes packaging and marketing terms, keeping the original casing of the rest
func removeNoiseWords(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))

	for _, word := range words {
		cleanWord := strings.ToLower(strings.Trim(word, ",.!?;:-'\""))
		if !searchNoiseWords[cleanWord] {
			kept = append(kept, word)
		}
	}

	return strings.Join(kept, " ")
}

// cleanOrphanedPunctuation removes punctuation that's now alone (e.g., lone commas)
func cleanOrphanedPunctuation(s string) string {
	// Applied twice since adjacent matches share their separating space
	s = orphanPunctuationPattern.ReplaceAllString(s, " ")
	s = orphanPunctuationPattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.Trim(s, ",-;:/ ")
}
