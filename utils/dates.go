package utils

import "time"

// DateLayout is the wire format for date-range query parameters.
const DateLayout = "2006-01-02"

func ParseStartDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseEndDate parses s and extends it to 23:59:59 so the whole day is
// included in inclusive range filters.
func ParseEndDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24*time.Hour - time.Second), nil
}
