package entity

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendance_StringsRoundTrip(t *testing.T) {
	t.Parallel()

	a := Attendance{
		civil.Date{Year: 2024, Month: 3, Day: 1}: true,
		civil.Date{Year: 2024, Month: 3, Day: 2}: false,
	}
	m := a.Strings()
	assert.Equal(t, map[string]bool{"2024-03-01": true, "2024-03-02": false}, m)

	back, err := AttendanceFromStrings(m)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestAttendanceFromStrings_RejectsBadKey(t *testing.T) {
	t.Parallel()

	_, err := AttendanceFromStrings(map[string]bool{"2024-13-01": true})
	assert.Error(t, err)
	_, err = AttendanceFromStrings(map[string]bool{"Fri Mar 01 2024": true})
	assert.Error(t, err)
}

func TestAttendance_Clone(t *testing.T) {
	t.Parallel()

	var nilMap Attendance
	assert.NotNil(t, nilMap.Clone())

	a := Attendance{civil.Date{Year: 2024, Month: 1, Day: 5}: true}
	c := a.Clone()
	c[civil.Date{Year: 2024, Month: 1, Day: 6}] = false
	assert.Len(t, a, 1)
	assert.Len(t, c, 2)
}
