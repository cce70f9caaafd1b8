package parser

import (
	"regexp"
	"strings"
)

var (
	// Two clock tokens separated by a dash-like character. The normalizer
	// folds long dashes to "-", but the glyphs stay in the class as a
	// fallback for text that skipped normalization.
	reTimeRange = regexp.MustCompile(
		`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s*[-–—]\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`)

	// A single clock token. A bare hour only counts with an am/pm suffix,
	// otherwise stray numbers in headers would read as times.
	reClockTime = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm)`)
)

// extractTimeRange pulls start/end clock times out of a session header.
// A lone time token is used for both ends. ok is false when the line
// holds no recoverable time at all.
func extractTimeRange(line string) (start, end string, ok bool) {
	if m := reTimeRange.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	}
	if tok := strings.TrimSpace(reClockTime.FindString(line)); tok != "" {
		return tok, tok, true
	}
	return "", "", false
}

// matchMealTime resolves the time-of-day keyword on a header line.
// First matching table entry wins.
func (e *Engine) matchMealTime(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, mt := range e.rules.MealTimes {
		if strings.Contains(lower, mt.Match) {
			return mt.TimeOfDay, true
		}
	}
	return "", false
}
