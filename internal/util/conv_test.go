package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod("2025-03"))
	assert.True(t, ValidPeriod("1999-12"))
	assert.False(t, ValidPeriod("2025-13"))
	assert.False(t, ValidPeriod("2025-3"))
	assert.False(t, ValidPeriod("03-2025"))
	assert.False(t, ValidPeriod(""))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-02")
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	_, err = ParseDate("02/03/2025")
	assert.Error(t, err)
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("abc"))
	assert.Equal(t, uint(0), MustParseUint(""))
}
