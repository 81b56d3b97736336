package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeFetcher struct {
	calls int
	rooms []RawRoom
	err   error
}

func (f *fakeFetcher) ListRooms(ctx context.Context) ([]RawRoom, error) {
	f.calls++
	return f.rooms, f.err
}

func TestDirectoryCachesAcrossCalls(t *testing.T) {
	fetcher := &fakeFetcher{rooms: []RawRoom{
		{Name: "vergaderzaal 4.1 (18p)", Email: "room41@example.org", RoomList: "rooms@example.org"},
	}}
	dir := NewDirectory(fetcher, time.Hour)

	first, err := dir.GetOrRefresh(context.Background())
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := dir.GetOrRefresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, fetcher.calls, "second read must be served from cache")
}

func TestDirectoryRefetchesAfterExpiry(t *testing.T) {
	fetcher := &fakeFetcher{rooms: []RawRoom{
		{Name: "vergaderzaal 4.1 (18p)", Email: "room41@example.org", RoomList: "rooms@example.org"},
	}}
	dir := NewDirectory(fetcher, 10*time.Millisecond)

	_, err := dir.GetOrRefresh(context.Background())
	assert.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = dir.GetOrRefresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls, "expired cache must trigger a refetch")
}

func TestDirectoryPropagatesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	dir := NewDirectory(fetcher, time.Hour)

	_, err := dir.GetOrRefresh(context.Background())
	assert.Error(t, err)

	// The failure is not cached; the next read tries again.
	_, err = dir.GetOrRefresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, fetcher.calls)
}
