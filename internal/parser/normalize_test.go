package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf unified", "Monday\r\nLunch\rPizza", "Monday\nLunch\nPizza"},
		{"smart quotes folded", "Chef’s “Special”", `Chef's "Special"`},
		{"long dashes folded", "11am – 1pm — daily", "11am - 1pm - daily"},
		{"ellipsis expanded", "and more…", "and more..."},
		{"exotic spaces folded", "Fresh Fruit Cup", "Fresh Fruit Cup"},
		{"trimmed", "  \n Monday \n ", "Monday"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}
