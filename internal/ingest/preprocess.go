package ingest

import (
	"regexp"
	"strings"
)

// Preprocessor cleans extracted text before it reaches a menu parser.
// OCR and pdftotext output carries page furniture that would otherwise
// show up as food items.
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Conservative context safeguard for LLM-backed parsing.
const maxCleanLength = 15000

var pageFurniture = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*page\s*\d+\s*$`),
	regexp.MustCompile(`^\s*\d+\s*/\s*\d+\s*$`),
	regexp.MustCompile(`^\s*\d+\s*$`),
	regexp.MustCompile(`(?i)^\s*weekly menu\s*$`),
}

var (
	rePageBreak = regexp.MustCompile(`-{3,}\s*PAGE\s*BREAK\s*-{3,}|\f`)
	reRunSpaces = regexp.MustCompile(`[ \t]+`)
	reRunBlank  = regexp.MustCompile(`\n{3,}`)
)

// Clean strips page breaks, page numbers, repeated sheet titles and OCR
// garbage, then clamps the result to a safe length.
func (p *Preprocessor) Clean(rawText string) string {
	if rawText == "" {
		return rawText
	}

	text := rePageBreak.ReplaceAllString(rawText, "\n")
	text = strings.ReplaceAll(text, "�", "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isPageFurniture(trimmed) {
			continue
		}
		kept = append(kept, strings.TrimSpace(reRunSpaces.ReplaceAllString(line, " ")))
	}
	text = strings.Join(kept, "\n")
	text = reRunBlank.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return clampLength(text)
}

func isPageFurniture(line string) bool {
	for _, re := range pageFurniture {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func clampLength(text string) string {
	if len(text) <= maxCleanLength {
		return text
	}
	truncated := text[:maxCleanLength]
	// cut at a line break so no half item survives
	if idx := strings.LastIndex(truncated, "\n"); idx > maxCleanLength/2 {
		truncated = truncated[:idx]
	}
	return truncated
}
