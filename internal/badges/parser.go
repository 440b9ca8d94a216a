// Package badges extracts remaining card-drop counts from Steam community
// badge pages. It deliberately recognizes only the minimal textual patterns
// needed for that, not general HTML: the backward-window heuristic linking a
// drop phrase to the nearest preceding app id is fragile against upstream
// page changes and is kept behind this package so it can be replaced without
// touching the farm loop.
package badges

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

const (
	// appIDWindow is how far back (in decoded characters) to look for the
	// app link belonging to a drop phrase.
	appIDWindow = 8000

	// maxPages bounds worst-case pagination.
	maxPages = 300
)

var (
	appIDPattern    = regexp.MustCompile(`(?i)gamecards/(\d+)(?:/|\?|&|$)`)
	dropsPattern    = regexp.MustCompile(`(?i)(\d+)\s*card\s*drops?\s*remaining`)
	pagePattern     = regexp.MustCompile(`(?i)[?&]p=(\d+)`)
	badgeRowPattern = regexp.MustCompile(`(?i)badge_row`)
)

// ParseResult carries the extracted drops plus the structural counters used
// to tell "no drops available" apart from "parsing failed".
type ParseResult struct {
	DropsByAppID map[uint32]int
	// BadgeRowCount is how many badge row markers rendered at all.
	BadgeRowCount int
	// DropPhraseCount counts every "N card drops remaining" phrase, linked
	// or not, including zero-count ones.
	DropPhraseCount int
	// LinkedDropCount counts phrases with a positive count that were
	// successfully linked to an app id.
	LinkedDropCount int
}

// Parse scans decoded page text for drop phrases and links each to the
// nearest app id referenced in the preceding window. When several app links
// precede a phrase, the last one wins.
func Parse(pageText string) ParseResult {
	result := ParseResult{DropsByAppID: map[uint32]int{}}

	if strings.TrimSpace(pageText) == "" {
		return result
	}

	decoded := html.UnescapeString(pageText)
	result.BadgeRowCount = len(badgeRowPattern.FindAllStringIndex(decoded, -1))

	phrases := dropsPattern.FindAllStringSubmatchIndex(decoded, -1)
	result.DropPhraseCount = len(phrases)

	for _, phrase := range phrases {
		drops, err := strconv.Atoi(decoded[phrase[2]:phrase[3]])
		if err != nil || drops <= 0 {
			continue
		}

		windowStart := phrase[0] - appIDWindow
		if windowStart < 0 {
			windowStart = 0
		}
		window := decoded[windowStart:phrase[0]]

		links := appIDPattern.FindAllStringSubmatch(window, -1)
		if len(links) == 0 {
			continue
		}

		appID, err := strconv.ParseUint(links[len(links)-1][1], 10, 32)
		if err != nil {
			continue
		}

		result.DropsByAppID[uint32(appID)] = drops
		result.LinkedDropCount++
	}

	return result
}

// Diagnose classifies badge pages that cannot yield drop data. It returns ""
// for a page that looks scannable. Checked before parsing, so a private or
// walled page always produces an empty drop map plus a diagnostic.
func Diagnose(pageText string) string {
	if strings.TrimSpace(pageText) == "" {
		return "could not read badge page content"
	}

	lower := strings.ToLower(pageText)

	if strings.Contains(lower, "profile_private_info") || strings.Contains(lower, "this profile is private") {
		return "card-drop scan failed: profile badges are private to this request; enable public badge visibility or use manual games"
	}

	if strings.Contains(lower, "openid") && !strings.Contains(lower, "badge_row") {
		return "card-drop scan hit a login page, so no badge data was parsed"
	}

	if !strings.Contains(lower, "badge_row") &&
		!strings.Contains(lower, "badges_sheet") &&
		!strings.Contains(lower, "badges_empty") {
		return "badge page format was not recognized, so no drops were parsed"
	}

	return ""
}

// MaxPage returns the highest page number referenced by pagination links,
// at least 1 and clamped to the page ceiling.
func MaxPage(pageText string) int {
	maxPage := 1

	for _, match := range pagePattern.FindAllStringSubmatch(pageText, -1) {
		page, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if page > maxPage {
			maxPage = page
		}
	}

	if maxPage > maxPages {
		maxPage = maxPages
	}

	return maxPage
}
