package agenda

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Placeholder values substituted for the details of private entries. The
// redaction happens inside Normalize and is irreversible.
const (
	PrivateSubject  = "Private appointment"
	PrivateLocation = "Undisclosed"
)

// attendeeSet merges attendees by email. Inserting an email that is already
// present overwrites the stored value, so the last insert wins. This is how
// the organizer's entry replaces a stale copy of themselves in the attendee
// list.
type attendeeSet map[string]Attendee

func (s attendeeSet) put(a Attendee) {
	s[a.Email] = a
}

func (s attendeeSet) sorted() []Attendee {
	out := make([]Attendee, 0, len(s))
	for _, a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// Normalize converts raw provider entries into canonical meetings in loc,
// sorted ascending by start time. Entries whose bounds cannot be interpreted
// make the whole call fail; guessing a time here would corrupt the
// availability computation downstream.
func Normalize(entries []RawEntry, loc *time.Location) ([]Meeting, error) {
	meetings := make([]Meeting, 0, len(entries))

	for i, e := range entries {
		start, err := e.Start.Resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): bad start: %w", i, e.Subject, err)
		}
		end, err := e.End.Resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): bad end: %w", i, e.Subject, err)
		}

		private := strings.EqualFold(e.Sensitivity, "private")

		m := Meeting{
			Start:      start,
			End:        end,
			AllDay:     e.AllDay,
			Private:    private,
			Online:     e.Online,
			MyResponse: e.MyResponse,
			Organizer:  Attendee{Response: ResponseUnknown},
			Attendees:  []Attendee{},
			Resources:  []Attendee{},
		}

		if private {
			m.Subject = PrivateSubject
			m.Location = PrivateLocation
		} else {
			m.Subject = e.Subject
			m.Description = e.Description
			m.Location = e.Location

			set := attendeeSet{}
			for _, a := range e.Optional {
				set.put(a)
			}
			for _, a := range e.Required {
				set.put(a)
			}
			if e.Organizer != nil {
				org := Attendee{Name: e.Organizer.Name, Email: e.Organizer.Email, Response: ResponseOrganizer}
				set.put(org)
				m.Organizer = org
			}
			m.Attendees = set.sorted()

			res := attendeeSet{}
			for _, a := range e.Resources {
				res.put(a)
			}
			m.Resources = res.sorted()
		}

		meetings = append(meetings, m)
	}

	// Stable: provider order is meaningless for same-start entries but must
	// not be shuffled between calls.
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].Start.Before(meetings[j].Start)
	})

	return meetings, nil
}
