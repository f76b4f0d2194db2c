package entity

import (
	"fmt"
	"strconv"
	"time"
)

// Backend timestamps come in three shapes; the first layout that parses wins.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	time.RFC3339,
	time.DateOnly,
}

// Timestamp decodes any of the date formats the backend emits.
// Plain dates are interpreted as UTC midnight.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot decode date: %q", s)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %s", data)
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(ts.Time.Format(time.RFC3339Nano))), nil
}

// DayKey is the calendar day of t in its own location, formatted yyyy-MM-dd.
// Keys compare lexicographically in date order.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
