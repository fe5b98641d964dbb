package inventory

import "strings"

// Bracket is one closed budget range in rupees. Bounds are inclusive where
// present; Max < 0 means unbounded above.
type Bracket struct {
	ID  string
	Min int64
	Max int64
}

// Bounded reports whether the bracket has an upper bound.
func (b Bracket) Bounded() bool { return b.Max >= 0 }

// The five selectable brackets plus the open "any budget" bracket.
var (
	BracketUnder5L  = Bracket{ID: "under_5l", Min: 0, Max: 500_000}
	Bracket5To10L   = Bracket{ID: "5_10l", Min: 500_000, Max: 1_000_000}
	Bracket10To15L  = Bracket{ID: "10_15l", Min: 1_000_000, Max: 1_500_000}
	Bracket15To20L  = Bracket{ID: "15_20l", Min: 1_500_000, Max: 2_000_000}
	BracketAbove20L = Bracket{ID: "above_20l", Min: 2_000_000, Max: -1}
	BracketAny      = Bracket{ID: "any", Min: 0, Max: -1}
)

// labelMarkers maps a substring of the user-facing budget label to its
// bracket. Matching by substring keeps old label variants working; bounds
// live here as data rather than in query code.
var labelMarkers = []struct {
	marker  string
	bracket Bracket
}{
	{"Under ₹5", BracketUnder5L},
	{"₹5-10", Bracket5To10L},
	{"₹10-15", Bracket10To15L},
	{"₹15-20", Bracket15To20L},
	{"Above ₹20", BracketAbove20L},
}

// BracketForLabel resolves a budget label to its bracket. An absent label,
// "Any", or an unrecognised label selects the open bracket.
func BracketForLabel(label string) Bracket {
	if label == "" || label == "Any" {
		return BracketAny
	}
	for _, m := range labelMarkers {
		if strings.Contains(label, m.marker) {
			return m.bracket
		}
	}
	return BracketAny
}
