package parser

import (
	"regexp"
	"strings"
)

// artifactPatterns are applied in order to strip OCR noise from a food
// item line. Kept as one ordered table so a new institution's scanner
// quirks slot in without touching control flow.
var artifactPatterns = []*regexp.Regexp{
	// bracketed symbol runs and empty brackets: [/], (>>), [], (), {}
	regexp.MustCompile(`\[[-\\/|*+>\s]*\]`),
	regexp.MustCompile(`\([-\\/|*+>\s]*\)`),
	regexp.MustCompile(`\{[-\\/|*+>\s]*\}`),
	// trademark / copyright / service-mark glyphs
	regexp.MustCompile(`[®™©℠]`),
	// dietary indicator tokens: [V], (Vv), [v]
	regexp.MustCompile(`[\[(][Vv]{1,2}[\])]`),
	// parenthesized single digits, page-marker noise
	regexp.MustCompile(`\(\s*\d\s*\)`),
	// @@) and runs of @
	regexp.MustCompile(`@{2,}\)?`),
	// decorative glyphs: arrows, geometric bullets, stars, checks
	regexp.MustCompile(`[►▶◄▼▲▪▫■□●○◦•★☆✦✧✓✔✗✘⚠➔➤]`),
	regexp.MustCompile(`[\x{2190}-\x{21FF}]`),
	// emoji blocks
	regexp.MustCompile(`[\x{1F300}-\x{1FAFF}]`),
	regexp.MustCompile(`[\x{2700}-\x{27BF}]|[\x{2B00}-\x{2BFF}]`),
}

var (
	// a lone capital letter between whitespace (or line edges) is OCR noise
	reIsolatedCapital = regexp.MustCompile(`(^|\s)[A-Z]($|\s)`)
	reDoubledCommas   = regexp.MustCompile(`,(?:\s*,)+`)
	reWhitespaceRun   = regexp.MustCompile(`\s+`)
)

// SanitizeItem cleans one raw food-item line. An empty result means the
// line was pure artifact and the caller drops it.
func (e *Engine) SanitizeItem(line string) string {
	s := e.truncateAtMarkers(line)

	for _, re := range artifactPatterns {
		s = re.ReplaceAllString(s, "")
	}

	// removal can make a neighbouring capital isolated, so run to a
	// fixed point
	for {
		next := reIsolatedCapital.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}

	s = reDoubledCommas.ReplaceAllString(s, ",")
	s = reWhitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, ","))

	for _, bullet := range []string{"-", "•", "*"} {
		if strings.HasPrefix(s, bullet) {
			s = strings.TrimSpace(s[len(bullet):])
			break
		}
	}
	return strings.TrimSpace(strings.TrimSuffix(s, "@"))
}

// truncateAtMarkers cuts the line at the first notice or sub-bar marker,
// the intra-line variant of the classifier's block truncation. Legend
// text frequently starts partway through an item line.
func (e *Engine) truncateAtMarkers(line string) string {
	lower := strings.ToLower(line)
	cut := len(line)

	for _, marker := range e.rules.NoticeMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	for _, marker := range e.rules.SubBarMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return line[:cut]
}
