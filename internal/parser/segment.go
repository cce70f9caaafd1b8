package parser

import "strings"

// dayBlock is the contiguous run of non-empty lines belonging to one
// weekday occurrence, in source order. The boundary line is lines[0].
type dayBlock struct {
	dayName string
	lines   []string
}

// segmentDays splits normalized text into one block per weekday
// occurrence. A line containing any weekday literal (case-insensitive)
// closes the block being accumulated and opens the next one. Blank lines
// are dropped. Lines before the first weekday line are preamble and are
// discarded.
func (e *Engine) segmentDays(text string) []dayBlock {
	var (
		blocks []dayBlock
		cur    *dayBlock
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if day, ok := e.matchWeekday(line); ok {
			if cur != nil && len(cur.lines) > 0 {
				blocks = append(blocks, *cur)
			}
			cur = &dayBlock{dayName: day}
		}
		if cur == nil {
			continue
		}
		cur.lines = append(cur.lines, line)
	}

	if cur != nil && len(cur.lines) > 0 {
		blocks = append(blocks, *cur)
	}
	return blocks
}

func (e *Engine) matchWeekday(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, day := range e.rules.Weekdays {
		if strings.Contains(lower, day) {
			return strings.ToUpper(day[:1]) + day[1:], true
		}
	}
	return "", false
}
