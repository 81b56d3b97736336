package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baszoetekouw/SurfChange/internal/agenda"
	"github.com/baszoetekouw/SurfChange/internal/rooms"
)

// AgendaFetcher retrieves raw calendar entries for a mailbox. Implemented
// by the Graph client; mocked in tests.
type AgendaFetcher interface {
	CalendarView(ctx context.Context, mailbox string, from, to time.Time) ([]agenda.RawEntry, error)
}

// RoomDirectory provides the cached room listing.
type RoomDirectory interface {
	GetOrRefresh(ctx context.Context) (map[string]rooms.Room, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	fetcher    AgendaFetcher
	directory  RoomDirectory
	loc        *time.Location
	mailDomain string
	gap        time.Duration
	now        func() time.Time
}

// NewHandler creates a new API handler. The clock is injectable so tests
// can pin "now".
func NewHandler(fetcher AgendaFetcher, directory RoomDirectory, loc *time.Location, mailDomain string) *Handler {
	return &Handler{
		fetcher:    fetcher,
		directory:  directory,
		loc:        loc,
		mailDomain: mailDomain,
		gap:        agenda.DefaultGapThreshold,
		now:        time.Now,
	}
}

// qualifyEmail appends the configured mail domain to bare localparts.
func (h *Handler) qualifyEmail(email string) string {
	if !strings.Contains(email, "@") && h.mailDomain != "" {
		return email + "@" + h.mailDomain
	}
	return email
}

// errBadUpstreamData marks provider entries the normalizer rejected.
var errBadUpstreamData = errors.New("bad upstream calendar data")

// dayAgenda fetches and normalizes the agenda of mailbox for the day
// starting at date (midnight in the handler's timezone).
func (h *Handler) dayAgenda(ctx context.Context, mailbox string, date time.Time) ([]agenda.Meeting, error) {
	from := date
	to := date.AddDate(0, 0, 1).Add(-time.Second)

	entries, err := h.fetcher.CalendarView(ctx, mailbox, from, to)
	if err != nil {
		return nil, err
	}

	meetings, err := agenda.Normalize(entries, h.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadUpstreamData, err)
	}
	return meetings, nil
}

// startOfDay truncates t to midnight in the handler's timezone.
func (h *Handler) startOfDay(t time.Time) time.Time {
	t = t.In(h.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, h.loc)
}

// wantsHTML reports whether the client explicitly prefers an HTML page
// over JSON.
func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
