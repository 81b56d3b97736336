package agenda

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ResponseType is a participant's response to a meeting invitation, using the
// EWS MyResponseType vocabulary.
type ResponseType string

const (
	ResponseUnknown    ResponseType = "Unknown"
	ResponseOrganizer  ResponseType = "Organizer"
	ResponseTentative  ResponseType = "Tentative"
	ResponseAccept     ResponseType = "Accept"
	ResponseDecline    ResponseType = "Decline"
	ResponseNoResponse ResponseType = "NoResponseReceived"
)

// Attendee is a meeting participant or a booked resource. Identity is the
// email address; two attendees with the same email are the same attendee
// regardless of name or response status.
type Attendee struct {
	Name     string       `json:"name,omitempty"`
	Email    string       `json:"email"`
	Response ResponseType `json:"response"`
}

// RawTime is a provider timestamp that is either a whole date (all-day
// entries) or an instant. Exactly one of the two fields is set.
type RawTime struct {
	Date     string    // "2006-01-02" for date-only values
	DateTime time.Time // zoned instant otherwise
}

// Resolve converts the value into a concrete time in loc. Date-only values
// are anchored to midnight. A value with neither field set is a data-format
// error; callers must not substitute a default.
func (t RawTime) Resolve(loc *time.Location) (time.Time, error) {
	if t.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", t.Date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", t.Date, err)
		}
		return d, nil
	}
	if !t.DateTime.IsZero() {
		return t.DateTime.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("entry has neither a date nor a datetime")
}

// RawEntry is one calendar entry as delivered by the provider, before
// normalization.
type RawEntry struct {
	Start       RawTime
	End         RawTime
	Sensitivity string
	Subject     string
	Description string
	Location    string
	AllDay      bool
	Online      bool
	Organizer   *Attendee
	Required    []Attendee
	Optional    []Attendee
	Resources   []Attendee
	MyResponse  ResponseType
}

// Meeting is a normalized calendar entry with both bounds in a single
// timezone. It is never mutated after Normalize returns it.
type Meeting struct {
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	AllDay      bool         `json:"all_day"`
	Private     bool         `json:"private"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Organizer   Attendee     `json:"organizer"`
	Online      bool         `json:"online"`
	Attendees   []Attendee   `json:"attendees"`
	Resources   []Attendee   `json:"resources"`
	MyResponse  ResponseType `json:"my_response"`
}

// MarshalJSON adds the derived clock/date fields next to the RFC3339 bounds.
func (m Meeting) MarshalJSON() ([]byte, error) {
	type alias Meeting
	return json.Marshal(struct {
		alias
		TimeStart string `json:"time_start"`
		TimeEnd   string `json:"time_end"`
		DateStart string `json:"date_start"`
		DateEnd   string `json:"date_end"`
		Duration  int64  `json:"duration"`
	}{
		alias:     alias(m),
		TimeStart: m.Start.Format("15:04"),
		TimeEnd:   m.End.Format("15:04"),
		DateStart: m.Start.Format("2006-01-02"),
		DateEnd:   m.End.Format("2006-01-02"),
		Duration:  int64(m.End.Sub(m.Start).Seconds()),
	})
}

// Status is a free/busy verdict for a single mailbox at a single instant.
// Next is the moment the state flips, or nil when it stays as-is for the
// rest of the day.
type Status struct {
	Available bool       `json:"available"`
	Next      *time.Time `json:"next"`
	Text      string     `json:"status"`
}
