package parser

import (
	"strings"

	"mealboard/internal/menu"
)

// ImplicitCourseType labels food items that appear before any course
// header, so leading unlabeled items are never dropped.
const ImplicitCourseType = "Main Items"

type classifierState int

const (
	noCourseOpen classifierState = iota
	courseOpen
)

// classifyCourses walks the lines following a session header and groups
// them into courses. Transitions, in priority order per line:
//
//  1. notice boundary — stop the block entirely, nothing after it parses
//  2. course-type header — close any open course, open a new one
//  3. anything else is a food item; sanitized, and dropped when the
//     sanitizer reduces it to nothing
//
// A course is emitted only once it holds at least one item.
func (e *Engine) classifyCourses(lines []string) []menu.Course {
	var (
		state      = noCourseOpen
		courseType string
		items      []string
	)
	courses := []menu.Course{}

	closeCourse := func() {
		if state == courseOpen && len(items) > 0 {
			courses = append(courses, menu.Course{
				ID:         len(courses),
				CourseType: courseType,
				FoodItems:  strings.Join(items, ", "),
			})
		}
		items = nil
	}

	for _, line := range lines {
		if e.isNoticeBoundary(line) {
			break
		}

		if canonical, ok := e.matchCourseType(line); ok {
			closeCourse()
			courseType = canonical
			state = courseOpen
			continue
		}

		item := e.SanitizeItem(line)
		if item == "" {
			continue
		}
		if state == noCourseOpen {
			courseType = ImplicitCourseType
			state = courseOpen
		}
		items = append(items, item)
	}

	closeCourse()
	return courses
}

// isNoticeBoundary reports whether the line belongs to the
// administrative boilerplate that trails the actual menu.
func (e *Engine) isNoticeBoundary(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range e.rules.NoticeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// matchCourseType tests a line against the course vocabulary and returns
// the canonical label. Entries without a canonical form pass the line
// through trimmed.
func (e *Engine) matchCourseType(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, rule := range e.rules.CourseTypes {
		if strings.Contains(lower, rule.Match) {
			if rule.Canonical != "" {
				return rule.Canonical, true
			}
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}
