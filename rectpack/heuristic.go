package rectpack

import (
	"fmt"
	"strings"
)

// Heuristic selects the rule used to choose among feasible placements.
//
// The numeric values are stable and form part of the public contract.
type Heuristic uint8

const (
	// BestShortSideFit places a rectangle against the free rectangle side it
	// fits best, minimizing the shorter leftover side.
	BestShortSideFit Heuristic = iota
	// BestLongSideFit minimizes the longer leftover side.
	BestLongSideFit
	// BestAreaFit picks the smallest free rectangle that fits.
	BestAreaFit
	// BottomLeftRule is the Tetris placement: lowest resulting edge, then leftmost.
	BottomLeftRule
	// ContactPointRule maximizes the length touching the bin border and the
	// rectangles already placed.
	ContactPointRule

	heuristicCount
)

var heuristicNames = [heuristicCount]string{
	BestShortSideFit: "BestShortSideFit",
	BestLongSideFit:  "BestLongSideFit",
	BestAreaFit:      "BestAreaFit",
	BottomLeftRule:   "BottomLeftRule",
	ContactPointRule: "ContactPointRule",
}

// Heuristics returns every heuristic in numeric order.
func Heuristics() []Heuristic {
	list := make([]Heuristic, 0, heuristicCount)
	for h := Heuristic(0); h < heuristicCount; h++ {
		list = append(list, h)
	}
	return list
}

// Valid reports whether h is one of the five defined heuristics.
func (h Heuristic) Valid() bool {
	return h < heuristicCount
}

func (h Heuristic) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heuristic(%d)", uint8(h))
	}
	return heuristicNames[h]
}

// MarshalText encodes the heuristic by name.
func (h Heuristic) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHeuristic, uint8(h))
	}
	return []byte(heuristicNames[h]), nil
}

// UnmarshalText accepts anything ParseHeuristic does.
func (h *Heuristic) UnmarshalText(text []byte) error {
	parsed, err := ParseHeuristic(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

var heuristicAliases = map[string]Heuristic{
	"bssf":             BestShortSideFit,
	"bestshortsidefit": BestShortSideFit,
	"blsf":             BestLongSideFit,
	"bestlongsidefit":  BestLongSideFit,
	"baf":              BestAreaFit,
	"bestareafit":      BestAreaFit,
	"bl":               BottomLeftRule,
	"bottomleft":       BottomLeftRule,
	"bottomleftrule":   BottomLeftRule,
	"cp":               ContactPointRule,
	"contactpoint":     ContactPointRule,
	"contactpointrule": ContactPointRule,
}

// ParseHeuristic resolves a heuristic from its name. Matching ignores case;
// the short forms BSSF, BLSF, BAF, BL and CP are accepted as well.
func ParseHeuristic(name string) (Heuristic, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "rect")
	if h, ok := heuristicAliases[key]; ok {
		return h, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}
