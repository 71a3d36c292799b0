package entity

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates (Gregorian).
const DateLayout = "2006-01-02"

// Date is a calendar date in the caller's Gregorian calendar. The era offset is
// applied only when the date is formatted onto a document.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		d.Time = time.Time{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %s", data)
	}
	raw := string(data[1 : len(data)-1])

	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		// Full timestamps are accepted; only the calendar date is kept.
		ts, tsErr := time.Parse(time.RFC3339, raw)
		if tsErr != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}
