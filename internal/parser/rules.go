package parser

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// MealTimeRule maps a header keyword to a time-of-day label.
type MealTimeRule struct {
	Match     string `yaml:"match"`
	TimeOfDay string `yaml:"time_of_day"`
}

// CourseTypeRule maps a course-header keyword to its canonical label.
// An empty Canonical means the matched line passes through trimmed.
type CourseTypeRule struct {
	Match     string `yaml:"match"`
	Canonical string `yaml:"canonical,omitempty"`
}

// RuleSet holds every pattern table the engine matches against. Tables
// are ordered: the first matching entry wins.
type RuleSet struct {
	Weekdays      []string         `yaml:"weekdays"`
	MealTimes     []MealTimeRule   `yaml:"meal_times"`
	CourseTypes   []CourseTypeRule `yaml:"course_types"`
	NoticeMarkers []string         `yaml:"notice_markers"`
	SubBarMarkers []string         `yaml:"sub_bar_markers"`
}

func (r RuleSet) validate() error {
	if len(r.Weekdays) == 0 {
		return errors.New("rule set has no weekdays")
	}
	for i, ct := range r.CourseTypes {
		if ct.Match == "" {
			return fmt.Errorf("course type rule %d has empty match", i)
		}
	}
	return nil
}

// DefaultRules returns the embedded rule tables.
func DefaultRules() RuleSet {
	var rules RuleSet
	if err := yaml.Unmarshal(defaultRulesYAML, &rules); err != nil {
		panic("parser: embedded rules.yaml is invalid: " + err.Error())
	}
	return rules
}

// LoadRules reads a deployment-specific rule file.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if err := rules.validate(); err != nil {
		return RuleSet{}, fmt.Errorf("rules file %s: %w", path, err)
	}

	return rules, nil
}
