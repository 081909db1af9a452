package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Parallel()

	m, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.March}, m)
	assert.Equal(t, "2024-03", m.String())

	for _, bad := range []string{"", "2024-13", "03-2024", "2024-3-01", "March"} {
		_, err := ParseMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestMonth_ContainsAndDays(t *testing.T) {
	t.Parallel()

	m := Month{Year: 2024, Month: time.February}
	assert.True(t, m.Contains(civil.Date{Year: 2024, Month: 2, Day: 29}))
	assert.False(t, m.Contains(civil.Date{Year: 2024, Month: 3, Day: 1}))
	assert.False(t, m.Contains(civil.Date{Year: 2023, Month: 2, Day: 1}))
	assert.Equal(t, 29, m.Days())
	assert.Equal(t, 31, Month{Year: 2024, Month: time.December}.Days())
}

func TestMonthOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Month{Year: 2025, Month: time.January}, MonthOf(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)))
}
