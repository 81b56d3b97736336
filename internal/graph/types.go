package graph

import (
	"strings"
	"time"

	"github.com/baszoetekouw/SurfChange/internal/agenda"
)

// graphEvent models one event from a Microsoft Graph calendarView response.
type graphEvent struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	Start struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"end"`
	Location struct {
		DisplayName string `json:"displayName"`
	} `json:"location"`
	IsAllDay        bool   `json:"isAllDay"`
	IsOnlineMeeting bool   `json:"isOnlineMeeting"`
	Sensitivity     string `json:"sensitivity"`
	Organizer       struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"organizer"`
	Attendees []struct {
		Type   string `json:"type"`
		Status struct {
			Response string `json:"response"`
		} `json:"status"`
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"attendees"`
	ResponseStatus struct {
		Response string `json:"response"`
	} `json:"responseStatus"`
}

// eventsPage is the paged envelope around calendarView results.
type eventsPage struct {
	Value    []graphEvent `json:"value"`
	NextLink string       `json:"@odata.nextLink"`
}

// place is a room or room list from the /places endpoint.
type place struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

type placesPage struct {
	Value    []place `json:"value"`
	NextLink string  `json:"@odata.nextLink"`
}

// graphError is the error envelope Graph wraps non-2xx responses in.
type graphError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// responseType maps Graph response-status strings onto the EWS vocabulary
// the rest of the system speaks.
func responseType(s string) agenda.ResponseType {
	switch strings.ToLower(s) {
	case "organizer":
		return agenda.ResponseOrganizer
	case "tentativelyaccepted":
		return agenda.ResponseTentative
	case "accepted":
		return agenda.ResponseAccept
	case "declined":
		return agenda.ResponseDecline
	case "notresponded":
		return agenda.ResponseNoResponse
	default:
		return agenda.ResponseUnknown
	}
}

// rawTime converts a Graph dateTime string into the tagged date-or-datetime
// value the normalizer consumes. All-day events carry only the date part;
// timed events are instants in UTC (the client asks Graph for UTC via the
// Prefer header). A string that fits neither form yields a zero RawTime,
// which the normalizer rejects as a data-format error.
func rawTime(s string, allDay bool) agenda.RawTime {
	if allDay {
		if len(s) >= 10 {
			return agenda.RawTime{Date: s[:10]}
		}
		return agenda.RawTime{}
	}
	// Graph appends fractional seconds ("2024-03-12T09:00:00.0000000").
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return agenda.RawTime{}
	}
	return agenda.RawTime{DateTime: t}
}

// toRawEntry maps a Graph event onto the provider-neutral entry.
func (e graphEvent) toRawEntry() agenda.RawEntry {
	entry := agenda.RawEntry{
		Start:       rawTime(e.Start.DateTime, e.IsAllDay),
		End:         rawTime(e.End.DateTime, e.IsAllDay),
		Sensitivity: e.Sensitivity,
		Subject:     e.Subject,
		Description: e.Body.Content,
		Location:    e.Location.DisplayName,
		AllDay:      e.IsAllDay,
		Online:      e.IsOnlineMeeting,
		MyResponse:  responseType(e.ResponseStatus.Response),
	}

	for _, a := range e.Attendees {
		att := agenda.Attendee{
			Name:     a.EmailAddress.Name,
			Email:    a.EmailAddress.Address,
			Response: responseType(a.Status.Response),
		}
		switch strings.ToLower(a.Type) {
		case "resource":
			entry.Resources = append(entry.Resources, att)
		case "optional":
			entry.Optional = append(entry.Optional, att)
		default:
			entry.Required = append(entry.Required, att)
		}
	}

	if e.Organizer.EmailAddress.Address != "" {
		entry.Organizer = &agenda.Attendee{
			Name:  e.Organizer.EmailAddress.Name,
			Email: e.Organizer.EmailAddress.Address,
		}
	}

	return entry
}
