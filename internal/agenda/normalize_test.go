package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dt(hour, min int) RawTime {
	return RawTime{DateTime: time.Date(2024, 3, 12, hour, min, 0, 0, tz)}
}

func TestNormalizeSortsByStart(t *testing.T) {
	entries := []RawEntry{
		{Subject: "later", Start: dt(14, 0), End: dt(15, 0)},
		{Subject: "earlier", Start: dt(9, 0), End: dt(10, 0)},
		{Subject: "tie-a", Start: dt(11, 0), End: dt(12, 0)},
		{Subject: "tie-b", Start: dt(11, 0), End: dt(11, 30)},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 4) {
		assert.Equal(t, "earlier", meetings[0].Subject)
		// Same-start entries keep input order.
		assert.Equal(t, "tie-a", meetings[1].Subject)
		assert.Equal(t, "tie-b", meetings[2].Subject)
		assert.Equal(t, "later", meetings[3].Subject)
	}
}

func TestNormalizeDateOnlyAnchorsToMidnight(t *testing.T) {
	entries := []RawEntry{
		{Subject: "offsite", Start: RawTime{Date: "2024-03-12"}, End: RawTime{Date: "2024-03-13"}, AllDay: true},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 1) {
		assert.True(t, meetings[0].AllDay)
		assert.True(t, time.Date(2024, 3, 12, 0, 0, 0, 0, tz).Equal(meetings[0].Start))
		assert.True(t, time.Date(2024, 3, 13, 0, 0, 0, 0, tz).Equal(meetings[0].End))
	}
}

func TestNormalizeConvertsToTargetTimezone(t *testing.T) {
	utc := time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)
	entries := []RawEntry{
		{Subject: "call", Start: RawTime{DateTime: utc}, End: RawTime{DateTime: utc.Add(time.Hour)}},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 1) {
		assert.Equal(t, tz, meetings[0].Start.Location())
		// Amsterdam is UTC+1 on that date.
		assert.Equal(t, 9, meetings[0].Start.Hour())
		assert.True(t, utc.Equal(meetings[0].Start))
	}
}

func TestNormalizePrivateRedaction(t *testing.T) {
	entries := []RawEntry{
		{
			Subject:     "salary review",
			Description: "numbers",
			Location:    "HR corner",
			Sensitivity: "Private",
			Start:       dt(13, 0),
			End:         dt(14, 0),
			Organizer:   &Attendee{Name: "Boss", Email: "boss@example.org"},
			Required:    []Attendee{{Email: "me@example.org", Response: ResponseAccept}},
			Resources:   []Attendee{{Email: "room41@example.org"}},
			MyResponse:  ResponseAccept,
		},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 1) {
		m := meetings[0]
		assert.True(t, m.Private)
		assert.Equal(t, PrivateSubject, m.Subject)
		assert.Equal(t, PrivateLocation, m.Location)
		assert.Empty(t, m.Description)
		assert.Empty(t, m.Attendees)
		assert.Empty(t, m.Resources)
		assert.Equal(t, Attendee{Response: ResponseUnknown}, m.Organizer)
		// The viewer's own response is not part of the redaction.
		assert.Equal(t, ResponseAccept, m.MyResponse)
	}
}

func TestNormalizeOrganizerReplacesAttendeeEntry(t *testing.T) {
	entries := []RawEntry{
		{
			Subject: "standup",
			Start:   dt(9, 0),
			End:     dt(9, 15),
			Optional: []Attendee{
				{Name: "Carol", Email: "carol@example.org", Response: ResponseTentative},
			},
			Required: []Attendee{
				// The organizer also shows up as a plain attendee with a
				// stale response type.
				{Name: "Alice", Email: "alice@example.org", Response: ResponseNoResponse},
				{Name: "Bob", Email: "bob@example.org", Response: ResponseAccept},
			},
			Organizer: &Attendee{Name: "Alice", Email: "alice@example.org"},
		},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 1) {
		m := meetings[0]
		assert.Equal(t, []Attendee{
			{Name: "Alice", Email: "alice@example.org", Response: ResponseOrganizer},
			{Name: "Bob", Email: "bob@example.org", Response: ResponseAccept},
			{Name: "Carol", Email: "carol@example.org", Response: ResponseTentative},
		}, m.Attendees)
		assert.Equal(t, ResponseOrganizer, m.Organizer.Response)
	}
}

func TestNormalizeRequiredOverridesOptionalDuplicate(t *testing.T) {
	entries := []RawEntry{
		{
			Subject:  "review",
			Start:    dt(10, 0),
			End:      dt(11, 0),
			Optional: []Attendee{{Name: "Bob", Email: "bob@example.org", Response: ResponseTentative}},
			Required: []Attendee{{Name: "Bob", Email: "bob@example.org", Response: ResponseAccept}},
		},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 1) {
		if assert.Len(t, meetings[0].Attendees, 1) {
			assert.Equal(t, ResponseAccept, meetings[0].Attendees[0].Response)
		}
	}
}

func TestNormalizeResourceDeduplication(t *testing.T) {
	entries := []RawEntry{
		{
			Subject: "allhands",
			Start:   dt(10, 0),
			End:     dt(11, 0),
			Resources: []Attendee{
				{Name: "Room 4.1", Email: "room41@example.org"},
				{Name: "Room 4.1 (dup)", Email: "room41@example.org"},
			},
		},
	}

	meetings, err := Normalize(entries, tz)
	assert.NoError(t, err)
	if assert.Len(t, meetings, 1) {
		assert.Len(t, meetings[0].Resources, 1)
	}
}

func TestNormalizeUnresolvableTimeFails(t *testing.T) {
	testCases := []struct {
		name  string
		entry RawEntry
	}{
		{"empty start", RawEntry{Subject: "x", End: dt(10, 0)}},
		{"empty end", RawEntry{Subject: "x", Start: dt(9, 0)}},
		{"garbage date", RawEntry{Subject: "x", Start: RawTime{Date: "12/03/2024"}, End: dt(10, 0)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize([]RawEntry{tc.entry}, tz)
			assert.Error(t, err)
		})
	}
}

// rawFromMeeting reconstructs a provider entry that is equivalent to an
// already-normalized meeting, for the idempotence check below.
func rawFromMeeting(m Meeting) RawEntry {
	e := RawEntry{
		Start:       RawTime{DateTime: m.Start},
		End:         RawTime{DateTime: m.End},
		Subject:     m.Subject,
		Description: m.Description,
		Location:    m.Location,
		AllDay:      m.AllDay,
		Online:      m.Online,
		Required:    m.Attendees,
		Resources:   m.Resources,
		MyResponse:  m.MyResponse,
	}
	if m.Private {
		e.Sensitivity = "private"
	}
	if m.Organizer.Email != "" {
		org := m.Organizer
		e.Organizer = &org
	}
	return e
}

func TestNormalizeIdempotent(t *testing.T) {
	entries := []RawEntry{
		{
			Subject:   "planning",
			Start:     dt(9, 0),
			End:       dt(10, 0),
			Optional:  []Attendee{{Name: "Carol", Email: "carol@example.org", Response: ResponseTentative}},
			Required:  []Attendee{{Name: "Alice", Email: "alice@example.org", Response: ResponseDecline}},
			Organizer: &Attendee{Name: "Alice", Email: "alice@example.org"},
		},
		{Subject: "secret", Sensitivity: "PRIVATE", Start: dt(11, 0), End: dt(12, 0)},
	}

	first, err := Normalize(entries, tz)
	assert.NoError(t, err)

	again := make([]RawEntry, len(first))
	for i, m := range first {
		again[i] = rawFromMeeting(m)
	}
	second, err := Normalize(again, tz)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
