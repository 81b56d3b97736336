package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	raw := []RawRoom{
		{Name: "vergaderzaal 4.1 (18p, lcd)", Email: "Room41@Example.Org", RoomList: "rooms-4@example.org"},
		{Name: "vergaderzaal 3.2 (8p)", Email: "room32@example.org", RoomList: "rooms-3@example.org"},
		{Name: "vergaderzaal 5.3 (12p)", Email: "room53@example.org", RoomList: "rooms-5@example.org"},
	}

	all := Build(raw)
	assert.Len(t, all, 3)

	r41 := all["4.1"]
	assert.Equal(t, "vergaderzaal", r41.Type)
	assert.Equal(t, 4, r41.Floor)
	assert.Equal(t, 1, r41.FloorSubnum)
	assert.Equal(t, 18, r41.Capacity)
	assert.Equal(t, "room41@example.org", r41.Email, "email must be lowercased")
	assert.Equal(t, "kantine", r41.Location)
	assert.Equal(t, []string{"rooms-4@example.org"}, r41.Groups)

	assert.Equal(t, "vergadercentrum", all["3.2"].Location)
	assert.Equal(t, "SURFmarket", all["5.3"].Location)
}

func TestBuildAccumulatesGroups(t *testing.T) {
	raw := []RawRoom{
		{Name: "vergaderzaal 4.1 (18p)", Email: "room41@example.org", RoomList: "rooms-4@example.org"},
		{Name: "vergaderzaal 4.1 (18p)", Email: "room41@example.org", RoomList: "rooms-video@example.org"},
	}

	all := Build(raw)
	assert.Len(t, all, 1)
	assert.Equal(t, []string{"rooms-4@example.org", "rooms-video@example.org"}, all["4.1"].Groups)
}

func TestBuildUnparseableNameUsesPlaceholders(t *testing.T) {
	all := Build([]RawRoom{{Name: "Boardroom", Email: "board@example.org", RoomList: "rooms@example.org"}})

	r := all["0.0"]
	assert.Equal(t, "unknown", r.Type)
	assert.Equal(t, "Boardroom", r.Description)
	assert.Equal(t, "unknown", r.Location)
}

func TestLocationFor(t *testing.T) {
	testCases := []struct {
		floor, subnum int
		expected      string
	}{
		{3, 1, "vergadercentrum"},
		{3, 6, "vergadercentrum"},
		{3, 7, "SURF"},
		{4, 9, "kantine"},
		{4, 10, "SURFnet"},
		{5, 1, "SURFmarket"},
		{7, 1, "unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, locationFor(tc.floor, tc.subnum), "floor %d.%d", tc.floor, tc.subnum)
	}
}

func TestSorted(t *testing.T) {
	all := map[string]Room{
		"5.1":  {Number: "5.1", Floor: 5, FloorSubnum: 1},
		"3.10": {Number: "3.10", Floor: 3, FloorSubnum: 10},
		"3.2":  {Number: "3.2", Floor: 3, FloorSubnum: 2},
	}

	sorted := Sorted(all)
	numbers := make([]string, len(sorted))
	for i, r := range sorted {
		numbers[i] = r.Number
	}
	assert.Equal(t, []string{"3.2", "3.10", "5.1"}, numbers)
}
