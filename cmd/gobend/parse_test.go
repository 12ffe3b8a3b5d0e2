package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("5030, 5020.5")
	require.NoError(t, err)
	assert.Equal(t, 5030.0, p.X)
	assert.Equal(t, 5020.5, p.Y)

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAssignment(t *testing.T) {
	row, value, err := parseAssignment("2=45,5")
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, "45,5", value)

	for _, bad := range []string{"45", "0=90", "x=90"} {
		_, _, err := parseAssignment(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWidths(t *testing.T) {
	thickness, widths, err := parseWidths("1.5=16, 8,")
	require.NoError(t, err)
	assert.Equal(t, 1.5, thickness)
	assert.Equal(t, []float64{16, 8}, widths)
	assert.Equal(t, "8, 16", formatWidths([]float64{8, 16}))

	_, _, err = parseWidths("1.5")
	assert.Error(t, err)
	_, _, err = parseWidths("1.5=x")
	assert.Error(t, err)
}
