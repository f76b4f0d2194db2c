package entity_test

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampDecoding(t *testing.T) {
	testCases := []struct {
		Desc     string
		Input    string
		Expected time.Time
		Error    bool
	}{
		{
			Desc:     "fractional seconds",
			Input:    `"2024-06-01T10:20:30.123456Z"`,
			Expected: time.Date(2024, 6, 1, 10, 20, 30, 123456000, time.UTC),
		},
		{
			Desc:     "whole seconds with offset",
			Input:    `"2024-06-01T12:20:30+02:00"`,
			Expected: time.Date(2024, 6, 1, 10, 20, 30, 0, time.UTC),
		},
		{
			Desc:     "plain date",
			Input:    `"2024-06-01"`,
			Expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Desc:  "unsupported format",
			Input: `"01/06/2024"`,
			Error: true,
		},
		{
			Desc:  "not a string",
			Input: `1717200000`,
			Error: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			var ts entity.Timestamp
			err := ts.UnmarshalJSON([]byte(tc.Input))
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.Expected.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestCheckInDecodingIsAllOrNothing(t *testing.T) {
	body := `{"id":"c1","user_id":"u1","quest_id":"q1","daily_task_id":"t1",
		"check_in_date":"2024-06-01","count":2,"created_at":"2024-06-01T08:00:00.5Z"}`
	var checkIn entity.CheckIn
	require.NoError(t, sonic.ConfigDefault.UnmarshalFromString(body, &checkIn))
	assert.Equal(t, "2024-06-01", entity.DayKey(checkIn.CheckInDate.Time))
	assert.Equal(t, 2, checkIn.Count)
	assert.Nil(t, checkIn.UpdatedAt)

	broken := `{"id":"c1","check_in_date":"yesterday","count":2}`
	assert.Error(t, sonic.ConfigDefault.UnmarshalFromString(broken, &checkIn))
}

func TestDayHelpers(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	late := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-06-01", entity.DayKey(late))
	assert.True(t, entity.SameDay(late, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), entity.StartOfDay(late))
	assert.Less(t, entity.DayKey(late), entity.DayKey(late.AddDate(0, 0, 1)))
}
