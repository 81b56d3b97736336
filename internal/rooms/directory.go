package rooms

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/patrickmn/go-cache"
)

const cacheKey = "rooms"

// Fetcher enumerates the provider's bookable rooms.
type Fetcher interface {
	ListRooms(ctx context.Context) ([]RawRoom, error)
}

// Directory is a TTL cache in front of the room enumeration, which is slow
// and changes rarely. It is injected into the handlers so tests can swap in
// a fake. Concurrent readers that both see a stale cache will both refetch;
// the refetch is idempotent and the last writer wins.
type Directory struct {
	fetcher Fetcher
	store   *cache.Cache
}

// NewDirectory creates a room directory with the given time-to-live.
func NewDirectory(fetcher Fetcher, ttl time.Duration) *Directory {
	return &Directory{
		fetcher: fetcher,
		store:   cache.New(ttl, 2*ttl),
	}
}

// GetOrRefresh returns the cached rooms, fetching them anew when the cache
// is empty or expired. A failed refetch is returned to the caller; stale
// data is never served past its TTL.
func (d *Directory) GetOrRefresh(ctx context.Context) (map[string]Room, error) {
	if v, found := d.store.Get(cacheKey); found {
		return v.(map[string]Room), nil
	}

	log.Println("Room directory cache is stale, refetching...")
	raw, err := d.fetcher.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	all := Build(raw)
	d.store.SetDefault(cacheKey, all)
	log.Printf("Room directory refreshed: %d rooms", len(all))
	return all, nil
}
