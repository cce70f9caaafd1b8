package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Meal time-of-day labels. Lunch is the documented default when a session
// header carries no recognizable keyword.
const (
	Breakfast = "breakfast"
	Brunch    = "brunch"
	Lunch     = "lunch"
	Dinner    = "dinner"
)

var validTimesOfDay = map[string]bool{
	Breakfast: true,
	Brunch:    true,
	Lunch:     true,
	Dinner:    true,
}

// Course is one named category of food inside a meal session.
// FoodItems is a single comma-and-space-joined string, NOT a list.
// Storage and the review UI depend on that representation.
type Course struct {
	ID         int    `json:"id"`
	CourseType string `json:"courseType"`
	FoodItems  string `json:"foodItems"`
}

// MealSession is a time-bounded eating period within a day.
// StartTime and EndTime are always both set; a header with a single
// clock token uses it for both.
type MealSession struct {
	ID        int      `json:"id"`
	TimeOfDay string   `json:"timeOfDay"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Courses   []Course `json:"courses"`
}

// DaySchedule bundles one weekday's meal sessions. ID is the 0-based day
// index in source-appearance order, not calendar order.
type DaySchedule struct {
	ID      int           `json:"id"`
	DayName string        `json:"dayName"`
	Meals   []MealSession `json:"meals"`
}

// WeeklyMenu is the parse result. Days keeps appearance order; the wire
// representation is the day-indexed object consumed by the review UI and
// the LLM parser (see MarshalJSON).
type WeeklyMenu struct {
	Days []DaySchedule
}

// MarshalJSON renders the day-indexed interchange shape:
//
//	{"0": {"id": 0, "dayName": "Monday", "meals": [...]}, "1": {...}}
func (w WeeklyMenu) MarshalJSON() ([]byte, error) {
	doc := make(map[string]DaySchedule, len(w.Days))
	for _, day := range w.Days {
		doc[strconv.Itoa(day.ID)] = day
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts the day-indexed object and restores appearance
// order by day id.
func (w *WeeklyMenu) UnmarshalJSON(data []byte) error {
	var doc map[string]DaySchedule
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	days := make([]DaySchedule, 0, len(doc))
	for _, day := range doc {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].ID < days[j].ID })

	w.Days = days
	return nil
}

var ErrEmptyMenu = errors.New("weekly menu has no days")

// Validate checks the structural invariants every producer must hold:
// sequential day ids, a day name per day, both session times set, a known
// time-of-day label, and at least one food item per course. It is the
// re-validation pass applied to LLM output before it is accepted.
func (w *WeeklyMenu) Validate() error {
	if len(w.Days) == 0 {
		return ErrEmptyMenu
	}

	for i, day := range w.Days {
		if day.ID != i {
			return fmt.Errorf("day %d: id %d out of order", i, day.ID)
		}
		if day.DayName == "" {
			return fmt.Errorf("day %d: missing dayName", i)
		}
		for j, meal := range day.Meals {
			if !validTimesOfDay[meal.TimeOfDay] {
				return fmt.Errorf("%s meal %d: unknown timeOfDay %q", day.DayName, j, meal.TimeOfDay)
			}
			if meal.StartTime == "" || meal.EndTime == "" {
				return fmt.Errorf("%s meal %d: start and end time must both be set", day.DayName, j)
			}
			for k, course := range meal.Courses {
				if course.CourseType == "" {
					return fmt.Errorf("%s meal %d course %d: missing courseType", day.DayName, j, k)
				}
				if course.FoodItems == "" {
					return fmt.Errorf("%s meal %d course %d: no food items", day.DayName, j, k)
				}
			}
		}
	}
	return nil
}
