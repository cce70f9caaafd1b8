package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTimeRange(t *testing.T) {
	tests := []struct {
		line       string
		start, end string
		ok         bool
	}{
		{"Lunch 11:20am - 1pm", "11:20am", "1pm", true},
		{"Dinner 5:00pm-7:30pm", "5:00pm", "7:30pm", true},
		{"Breakfast 7:00am", "7:00am", "7:00am", true},
		{"Brunch 10am – 2pm", "10am", "2pm", true}, // en dash survives as fallback
		{"Lunch 11:30 - 13:30", "11:30", "13:30", true},
		{"Monday", "", "", false},
		{"Closed for the holiday", "", "", false},
	}

	for _, tt := range tests {
		start, end, ok := extractTimeRange(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.start, start, tt.line)
		assert.Equal(t, tt.end, end, tt.line)
	}
}

func TestMatchMealTimeFirstKeywordWins(t *testing.T) {
	engine := Default()

	tod, ok := engine.matchMealTime("Saturday Brunch 10am - 2pm")
	assert.True(t, ok)
	assert.Equal(t, "brunch", tod)

	// breakfast is earlier in the table than lunch
	tod, ok = engine.matchMealTime("Breakfast (lunch items available)")
	assert.True(t, ok)
	assert.Equal(t, "breakfast", tod)

	_, ok = engine.matchMealTime("11:30am - 1:30pm")
	assert.False(t, ok)
}
