package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Room display names look like "vergaderzaal 4.1 (18p, 75" lcd, conf. telefoon)":
// a type word, a floor.sub number, and a capacity inside the parentheses.
var roomRe = regexp.MustCompile(`^(\S+) +(\d+\.\d+) +\((\d+)p`)

// ParsedName holds the structured data parsed from a room's display name.
type ParsedName struct {
	Type        string
	Number      string
	Floor       int
	FloorSubnum int
	Capacity    int
}

// ParseName extracts the room type, number and capacity from a raw display
// name. The floor and floor sub-number are derived from the "F.N" number.
func ParseName(raw string) (ParsedName, error) {
	s := strings.TrimSpace(raw)

	m := roomRe.FindStringSubmatch(s)
	if m == nil {
		return ParsedName{}, fmt.Errorf("unable to parse room name: %q", raw)
	}

	capacity, err := strconv.Atoi(m[3])
	if err != nil {
		return ParsedName{}, fmt.Errorf("unable to parse capacity from %q: %w", raw, err)
	}

	parts := strings.SplitN(m[2], ".", 2)
	floor, err := strconv.Atoi(parts[0])
	if err != nil {
		return ParsedName{}, fmt.Errorf("unable to parse floor from %q: %w", raw, err)
	}
	sub, err := strconv.Atoi(parts[1])
	if err != nil {
		return ParsedName{}, fmt.Errorf("unable to parse floor subnumber from %q: %w", raw, err)
	}

	return ParsedName{
		Type:        m[1],
		Number:      m[2],
		Floor:       floor,
		FloorSubnum: sub,
		Capacity:    capacity,
	}, nil
}
