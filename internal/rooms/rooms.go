package rooms

import (
	"log"
	"sort"
	"strings"

	"github.com/baszoetekouw/SurfChange/internal/parse"
)

// Room is one bookable meeting room, assembled from the provider's room
// lists and the parsed display name.
type Room struct {
	Number      string   `json:"number"`
	Floor       int      `json:"floor"`
	FloorSubnum int      `json:"floor_subnum"`
	Email       string   `json:"email"`
	Type        string   `json:"type"`
	Capacity    int      `json:"people"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Groups      []string `json:"groups"`
}

// RawRoom is a room entry as enumerated from the provider, before parsing.
type RawRoom struct {
	Name     string
	Email    string
	RoomList string
}

// locationFor maps a floor/subnumber pair onto the building area the room
// sits in.
func locationFor(floor, subnum int) string {
	switch {
	case floor == 3 && subnum <= 6:
		return "vergadercentrum"
	case floor == 4 && subnum < 10:
		return "kantine"
	case floor == 3:
		return "SURF"
	case floor == 4:
		return "SURFnet"
	case floor == 5:
		return "SURFmarket"
	default:
		return "unknown"
	}
}

// Build assembles the room directory from raw provider entries, keyed by
// room number. A room appearing in several room lists keeps one entry and
// accumulates the list addresses in Groups. Unparseable names fall back to
// placeholder values rather than dropping the room.
func Build(raw []RawRoom) map[string]Room {
	all := make(map[string]Room)
	for _, r := range raw {
		parsed, err := parse.ParseName(r.Name)
		if err != nil {
			log.Printf("Warning: %v; using placeholder room data", err)
			parsed = parse.ParsedName{Type: "unknown", Number: "0.0"}
		}

		if existing, ok := all[parsed.Number]; ok {
			existing.Groups = append(existing.Groups, r.RoomList)
			all[parsed.Number] = existing
			continue
		}

		all[parsed.Number] = Room{
			Number:      parsed.Number,
			Floor:       parsed.Floor,
			FloorSubnum: parsed.FloorSubnum,
			Email:       strings.ToLower(r.Email),
			Type:        parsed.Type,
			Capacity:    parsed.Capacity,
			Description: r.Name,
			Location:    locationFor(parsed.Floor, parsed.FloorSubnum),
			Groups:      []string{r.RoomList},
		}
	}
	return all
}

// Sorted returns the rooms ordered by floor and subnumber, for listings.
func Sorted(all map[string]Room) []Room {
	out := make([]Room, 0, len(all))
	for _, r := range all {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Floor != out[j].Floor {
			return out[i].Floor < out[j].Floor
		}
		return out[i].FloorSubnum < out[j].FloorSubnum
	})
	return out
}
