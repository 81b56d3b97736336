package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse converts a date word into midnight of the matching day in loc. It
// accepts English and Dutch relative words ("today"/"vandaag",
// "tomorrow"/"morgen", "dayaftertomorrow"/"dat"/"overmorgen"), a "+N" day
// offset, and explicit dates in 2006-01-02 or day-first 02-01-2006 form.
// The reference instant now is supplied by the caller.
func Parse(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "", "today", "vandaag":
		return startOfDay(now, loc), nil
	case "tomorrow", "morgen":
		return startOfDay(now, loc).AddDate(0, 0, 1), nil
	case "dayaftertomorrow", "dat", "overmorgen":
		return startOfDay(now, loc).AddDate(0, 0, 2), nil
	}

	if strings.HasPrefix(s, "+") {
		days, err := strconv.Atoi(s[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day offset %q: %w", s, err)
		}
		return startOfDay(now, loc).AddDate(0, 0, days), nil
	}

	for _, layout := range []string{"2006-01-02", "02-01-2006", "2-1-2006"} {
		if d, err := time.ParseInLocation(layout, s, loc); err == nil {
			return d, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date %q", s)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
