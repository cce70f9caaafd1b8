// Package parser turns noisy OCR/PDF-extracted weekly menu text into a
// structured menu.WeeklyMenu. The pipeline is a single pass of pure
// functions: normalize, segment into day blocks, interpret each block's
// session header, classify the remaining lines into courses, sanitize
// every food item. All matching runs against the ordered tables in
// RuleSet, so institution-specific vocabulary is data, not code.
package parser

import (
	"context"
	"errors"
	"log"

	"mealboard/internal/menu"
)

// Engine is the deterministic rule-based parser. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	rules RuleSet
}

func NewEngine(rules RuleSet) *Engine {
	return &Engine{rules: rules}
}

// Default returns an engine running the embedded rule tables.
func Default() *Engine {
	return NewEngine(DefaultRules())
}

// SkippedBlock records a day block dropped because its header held no
// recoverable clock time. Dropping a block never fails the parse.
type SkippedBlock struct {
	DayName    string `json:"dayName"`
	HeaderLine string `json:"headerLine"`
}

// Report is the full parse outcome: the menu plus per-block diagnostics.
type Report struct {
	Menu    *menu.WeeklyMenu
	Skipped []SkippedBlock
}

// Parse converts raw text into a weekly menu. Total: any input yields a
// well-formed menu, possibly with zero days.
func (e *Engine) Parse(rawText string) *menu.WeeklyMenu {
	return e.ParseWithReport(rawText).Menu
}

// ParseWithReport is Parse plus the skipped-block diagnostics.
//
// Day indexes follow appearance order in the text, not calendar order.
// Repeated blocks for the same weekday merge into one day entry, each
// block contributing one meal session in block order.
func (e *Engine) ParseWithReport(rawText string) Report {
	blocks := e.segmentDays(NormalizeText(rawText))

	w := &menu.WeeklyMenu{Days: []menu.DaySchedule{}}
	dayIndex := make(map[string]int)
	var skipped []SkippedBlock

	for _, block := range blocks {
		session, ok := e.buildSession(block)
		if !ok {
			skipped = append(skipped, SkippedBlock{
				DayName:    block.dayName,
				HeaderLine: block.lines[0],
			})
			continue
		}

		idx, seen := dayIndex[block.dayName]
		if !seen {
			idx = len(w.Days)
			dayIndex[block.dayName] = idx
			w.Days = append(w.Days, menu.DaySchedule{
				ID:      idx,
				DayName: block.dayName,
				Meals:   []menu.MealSession{},
			})
		}

		session.ID = len(w.Days[idx].Meals)
		w.Days[idx].Meals = append(w.Days[idx].Meals, session)
	}

	return Report{Menu: w, Skipped: skipped}
}

// buildSession interprets a block's header and classifies its body.
//
// The weekday boundary line usually doubles as the session header
// ("Monday Lunch 11:20am - 1pm"), but many layouts put the header on the
// following line, so both of the first two lines are tried. The meal-time
// keyword is looked up on the header line first, then on the boundary
// line; lunch is the documented default when neither names one.
func (e *Engine) buildSession(block dayBlock) (menu.MealSession, bool) {
	headerIdx := -1
	var start, end string

	limit := min(2, len(block.lines))
	for i := 0; i < limit; i++ {
		if s, en, ok := extractTimeRange(block.lines[i]); ok {
			start, end = s, en
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return menu.MealSession{}, false
	}

	timeOfDay, ok := e.matchMealTime(block.lines[headerIdx])
	if !ok && headerIdx > 0 {
		timeOfDay, ok = e.matchMealTime(block.lines[0])
	}
	if !ok {
		timeOfDay = menu.Lunch
	}

	return menu.MealSession{
		TimeOfDay: timeOfDay,
		StartTime: start,
		EndTime:   end,
		Courses:   e.classifyCourses(block.lines[headerIdx+1:]),
	}, true
}

// ErrNoDaysParsed is returned by the strategy adapter when nothing in
// the input was recognizable, so the caller can fall back to the
// LLM-backed parser.
var ErrNoDaysParsed = errors.New("no day blocks parsed from text")

// ParseMenu adapts the engine to the menu.Parser strategy interface.
// Skipped blocks are logged, not raised; an entirely empty result is the
// one condition reported as an error.
func (e *Engine) ParseMenu(_ context.Context, rawText string) (*menu.WeeklyMenu, error) {
	report := e.ParseWithReport(rawText)
	for _, s := range report.Skipped {
		log.Printf("PARSER_BLOCK_SKIPPED day=%s header=%q", s.DayName, s.HeaderLine)
	}
	if len(report.Menu.Days) == 0 {
		return nil, ErrNoDaysParsed
	}
	return report.Menu, nil
}
