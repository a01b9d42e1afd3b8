package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero", input: 0, expected: "0.00"},
		{name: "integer", input: 123, expected: "123.00"},
		{name: "one decimal", input: 13.4, expected: "13.40"},
		{name: "rounds", input: 635.7361, expected: "635.74"},
		{name: "negative", input: -100, expected: "-100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero", input: 0, expected: "0"},
		{name: "integral budget", input: 237000000, expected: "237000000"},
		{name: "large revenue", input: 2787965087, expected: "2787965087"},
		{name: "popularity", input: 150.437577, expected: "150.437577"},
		{name: "negative", input: -0.5, expected: "-0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatNumber(tt.input))
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", formatInt(0))
	assert.Equal(t, "2009", formatInt(2009))
	assert.Equal(t, "-3", formatInt(-3))
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "", formatList(nil))
	assert.Equal(t, "Action", formatList([]string{"Action"}))
	assert.Equal(t, "Action|Adventure|Fantasy", formatList([]string{"Action", "Adventure", "Fantasy"}))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "2009-12-10", formatDate(time.Date(2009, 12, 10, 0, 0, 0, 0, time.UTC)))
}
