package agenda

import (
	"fmt"
	"time"
)

// DefaultGapThreshold is the largest gap between two meetings that still
// counts as one continuous busy block.
const DefaultGapThreshold = 5 * time.Minute

// Availability computes the free/busy verdict for a day agenda at the
// instant now. The agenda must be sorted ascending by start (Normalize's
// output order) and cover a single day. It is a total function: no errors,
// no system clock.
func Availability(agenda []Meeting, now time.Time, gap time.Duration) Status {
	// The relevant meeting is the first one still running or yet to come.
	// A meeting ending exactly at now is over.
	idx := -1
	for i, m := range agenda {
		if m.End.After(now) {
			idx = i
			break
		}
	}

	if idx < 0 {
		// Nothing left today.
		return Status{Available: true, Next: nil, Text: "free"}
	}

	rel := agenda[idx]
	if !rel.Start.Before(now) {
		// Not started yet; free at the exact instant a meeting begins.
		next := rel.Start
		return Status{Available: true, Next: &next, Text: untilText("free", next, now)}
	}

	// In progress. Extend the busy block over every later meeting that
	// starts within gap of the block's end; only a strictly larger gap
	// breaks the block.
	last := rel.End
	for _, m := range agenda[idx+1:] {
		if m.Start.Sub(last) > gap {
			break
		}
		if m.End.After(last) {
			last = m.End
		}
	}
	return Status{Available: false, Next: &last, Text: untilText("busy", last, now)}
}

// untilText renders "free until 15:04" style status lines. A transition on
// another calendar day is reported without a clock time.
func untilText(state string, next, now time.Time) string {
	y1, m1, d1 := next.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return fmt.Sprintf("%s until %s", state, next.Format("15:04"))
	}
	return state
}
