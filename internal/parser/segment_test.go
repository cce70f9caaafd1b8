package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentDaysSplitsOnWeekdayLines(t *testing.T) {
	blocks := Default().segmentDays(
		"Monday Lunch\nPizza\n\nSalad\nTuesday Lunch\nBurgers\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, "Monday", blocks[0].dayName)
	assert.Equal(t, []string{"Monday Lunch", "Pizza", "Salad"}, blocks[0].lines)
	assert.Equal(t, "Tuesday", blocks[1].dayName)
	assert.Equal(t, []string{"Tuesday Lunch", "Burgers"}, blocks[1].lines)
}

func TestSegmentDaysBoundaryIsCaseInsensitiveSubstring(t *testing.T) {
	blocks := Default().segmentDays("** FRIDAY SPECIALS **\nFish Fry\n")

	require.Len(t, blocks, 1)
	assert.Equal(t, "Friday", blocks[0].dayName)
}

func TestSegmentDaysDropsLeadingPreamble(t *testing.T) {
	blocks := Default().segmentDays("Dining Services\nWeek 12\nSunday Brunch\nWaffles\n")

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"Sunday Brunch", "Waffles"}, blocks[0].lines)
}

func TestSegmentDaysEmptyInput(t *testing.T) {
	assert.Empty(t, Default().segmentDays(""))
	assert.Empty(t, Default().segmentDays("\n\n\n"))
}
