package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/baszoetekouw/SurfChange/internal/agenda"
	"github.com/baszoetekouw/SurfChange/internal/rooms"
)

const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// ErrMailboxNotFound marks an identity that the provider cannot resolve.
// Callers must surface it as "not found", never as an empty agenda.
var ErrMailboxNotFound = errors.New("mailbox not found")

// Client fetches calendar data from the Microsoft Graph API. Authentication
// lives in the injected HTTP client (an oauth2 transport); this client adds
// no retry policy of its own.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
}

// NewClient creates a Graph client on top of an authenticated HTTP client.
// An empty baseURL selects the public Graph endpoint.
func NewClient(httpClient *http.Client, baseURL string, pageSize int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		pageSize:   pageSize,
	}
}

// CalendarView returns the raw calendar entries for mailbox between from
// and to, expanded the way the provider expands them (recurrences included,
// one entry per occurrence). The entries arrive ordered by start time.
func (c *Client) CalendarView(ctx context.Context, mailbox string, from, to time.Time) ([]agenda.RawEntry, error) {
	if to.Before(from) {
		return []agenda.RawEntry{}, nil
	}

	params := url.Values{}
	params.Set("startDateTime", from.UTC().Format(time.RFC3339))
	params.Set("endDateTime", to.UTC().Format(time.RFC3339))
	params.Set("$orderby", "start/dateTime")
	params.Set("$top", fmt.Sprintf("%d", c.pageSize))

	endpoint := c.baseURL + "/users/" + url.PathEscape(mailbox) + "/calendarView?" + params.Encode()

	var entries []agenda.RawEntry
	for endpoint != "" {
		var page eventsPage
		if err := c.get(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("calendarView for %s: %w", mailbox, err)
		}
		for _, ev := range page.Value {
			entries = append(entries, ev.toRawEntry())
		}
		endpoint = page.NextLink
	}

	log.Printf("Fetched %d calendar entries for %s", len(entries), mailbox)
	return entries, nil
}

// ListRooms enumerates every room list and its rooms. This is the slow call
// the room directory caches.
func (c *Client) ListRooms(ctx context.Context) ([]rooms.RawRoom, error) {
	var lists []place
	endpoint := c.baseURL + "/places/microsoft.graph.roomlist"
	for endpoint != "" {
		var page placesPage
		if err := c.get(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("list room lists: %w", err)
		}
		lists = append(lists, page.Value...)
		endpoint = page.NextLink
	}

	var all []rooms.RawRoom
	for _, list := range lists {
		endpoint := c.baseURL + "/places/" + url.PathEscape(list.EmailAddress) + "/microsoft.graph.roomlist/rooms"
		for endpoint != "" {
			var page placesPage
			if err := c.get(ctx, endpoint, &page); err != nil {
				return nil, fmt.Errorf("list rooms of %s: %w", list.EmailAddress, err)
			}
			for _, r := range page.Value {
				all = append(all, rooms.RawRoom{
					Name:     r.DisplayName,
					Email:    r.EmailAddress,
					RoomList: list.EmailAddress,
				})
			}
			endpoint = page.NextLink
		}
	}

	return all, nil
}

// get performs one Graph GET and decodes the response into out. Times are
// requested in UTC so the normalizer owns all timezone handling.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Prefer", `outlook.timezone="UTC"`)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		var ge graphError
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Code != "" {
			return fmt.Errorf("%s: %w", ge.Error.Code, ErrMailboxNotFound)
		}
		return ErrMailboxNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("received non-200 status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
