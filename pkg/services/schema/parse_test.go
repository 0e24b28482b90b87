package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
		ok       bool
	}{
		{name: "plain", in: "1234.56", expected: 1234.56, ok: true},
		{name: "dollar with thousands", in: "$1,234.56", expected: 1234.56, ok: true},
		{name: "euro decimal comma", in: "€1.234,56", expected: 1234.56, ok: true},
		{name: "pound", in: "£99.99", expected: 99.99, ok: true},
		{name: "percent", in: "85%", expected: 85, ok: true},
		{name: "padded", in: "  42  ", expected: 42, ok: true},
		{name: "negative", in: "-13.5", expected: -13.5, ok: true},
		{name: "bare comma is thousands", in: "1,234", expected: 1234, ok: true},
		{name: "space grouping", in: "1 234.5", expected: 1234.5, ok: true},
		{name: "empty", in: "", ok: false},
		{name: "words", in: "n/a", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := ParseAmount(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.expected, v, 1e-9)
			}
		})
	}
}

func TestParseDate_TriesLayoutsInOrder(t *testing.T) {
	layouts := DefaultProfile().DateLayouts

	v, ok := ParseDate("1/15/2018 10:30", layouts)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2018, 1, 15, 10, 30, 0, 0, time.UTC), v)

	v, ok = ParseDate("2018-01-15", layouts)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC), v)

	_, ok = ParseDate("not a date", layouts)
	assert.False(t, ok)

	_, ok = ParseDate("", layouts)
	assert.False(t, ok)
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
		ok       bool
	}{
		{in: "1", expected: true, ok: true},
		{in: "0", expected: false, ok: true},
		{in: "true", expected: true, ok: true},
		{in: "False", expected: false, ok: true},
		{in: "YES", expected: true, ok: true},
		{in: "n", expected: false, ok: true},
		{in: "2", expected: true, ok: true},
		{in: "maybe", ok: false},
	}

	for _, tc := range tests {
		v, ok := parseFlag(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.expected, v, "input %q", tc.in)
		}
	}
}
