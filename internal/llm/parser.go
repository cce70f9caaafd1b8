package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mealboard/internal/menu"
)

// Parser is the network-backed alternative to the rule engine. It
// implements menu.Parser: prompt the model, unwrap whatever envelope the
// response arrived in, repair obvious structural slips, and re-validate
// before handing the menu back.
type Parser struct {
	client Client
}

func NewParser(client Client) *Parser {
	return &Parser{client: client}
}

// MalformedResponseError carries the raw model output so a failed parse
// can be diagnosed from logs without replaying the request.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed llm response: %v (raw: %.200s)", e.Err, e.Raw)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (p *Parser) ParseMenu(ctx context.Context, rawText string) (*menu.WeeklyMenu, error) {
	output, err := p.client.GenerateMenu(ctx, rawText)
	if err != nil {
		return nil, err
	}

	w, err := decodeWeeklyMenu(output)
	if err != nil {
		return nil, &MalformedResponseError{Raw: output, Err: err}
	}
	return w, nil
}

// decodeWeeklyMenu tries the strict extraction first (the whole output,
// or a fenced code block, as JSON). If that fails it retries exactly
// once with the permissive outermost-brace scan before giving up.
func decodeWeeklyMenu(output string) (*menu.WeeklyMenu, error) {
	strict := strictExtract(output)
	w, err := unmarshalWeeklyMenu(strict)
	if err == nil {
		return w, nil
	}

	if loose := looseExtract(output); loose != "" && loose != strict {
		if w, looseErr := unmarshalWeeklyMenu(loose); looseErr == nil {
			return w, nil
		}
	}
	return nil, err
}

// strictExtract returns the payload a well-behaved model produces:
// either bare JSON or JSON inside a markdown fence.
func strictExtract(output string) string {
	s := strings.TrimSpace(output)
	if json.Valid([]byte(s)) {
		return s
	}

	if start := strings.Index(s, "```"); start >= 0 {
		rest := s[start+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}
	return s
}

// looseExtract takes everything between the first "{" and the last "}",
// the permissive fallback for output wrapped in prose.
func looseExtract(output string) string {
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return output[start : end+1]
}

func unmarshalWeeklyMenu(payload string) (*menu.WeeklyMenu, error) {
	var w menu.WeeklyMenu
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return nil, err
	}
	repair(&w)
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// repair fixes the structural slips models make routinely — stale ids,
// uppercased labels, courses with no items — so validation only rejects
// responses that are genuinely unusable.
func repair(w *menu.WeeklyMenu) {
	for i := range w.Days {
		day := &w.Days[i]
		day.ID = i
		for j := range day.Meals {
			meal := &day.Meals[j]
			meal.ID = j
			meal.TimeOfDay = strings.ToLower(strings.TrimSpace(meal.TimeOfDay))
			if meal.StartTime != "" && meal.EndTime == "" {
				meal.EndTime = meal.StartTime
			}
			if meal.EndTime != "" && meal.StartTime == "" {
				meal.StartTime = meal.EndTime
			}

			kept := meal.Courses[:0]
			for _, course := range meal.Courses {
				if strings.TrimSpace(course.FoodItems) == "" {
					continue
				}
				course.ID = len(kept)
				kept = append(kept, course)
			}
			meal.Courses = kept
		}
	}
}
