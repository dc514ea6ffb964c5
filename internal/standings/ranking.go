package standings

import (
	"sort"
	"strconv"
)

// Encounter is a completed match expressed entity-wise, used for
// head-to-head tie-breaking.
type Encounter struct {
	SideA  []string
	SideB  []string
	Winner int
}

// Ranked is a record plus its resolved display position. Entities still
// tied after the head-to-head check share a position and carry a "T"
// prefix; everyone else gets the cardinal position.
type Ranked struct {
	Record
	Position    int
	DisplayRank string
}

// Rank orders records by wins, then games differential, then the
// head-to-head result between the tied pair, then name as the final
// deterministic tiebreak.
func Rank(records []Record, encounters []Encounter) []Ranked {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GamesDiff() != b.GamesDiff() {
			return a.GamesDiff() > b.GamesDiff()
		}
		if h := headToHead(a.EntityID, b.EntityID, encounters); h != 0 {
			return h > 0
		}
		return a.Name < b.Name
	})

	out := make([]Ranked, len(sorted))
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && fullyTied(&sorted[i], &sorted[j], encounters) {
			j++
		}
		for k := i; k < j; k++ {
			out[k] = Ranked{Record: sorted[k], Position: i + 1}
			if j-i > 1 {
				out[k].DisplayRank = "T" + strconv.Itoa(i+1)
			} else {
				out[k].DisplayRank = strconv.Itoa(i + 1)
			}
		}
		i = j
	}
	return out
}

func fullyTied(a, b *Record, encounters []Encounter) bool {
	return a.Wins == b.Wins &&
		a.GamesDiff() == b.GamesDiff() &&
		headToHead(a.EntityID, b.EntityID, encounters) == 0
}

// headToHead scans completed encounters for direct meetings of a and b and
// compares each side's wins in those meetings. Positive means a leads.
func headToHead(a, b string, encounters []Encounter) int {
	aWins, bWins := 0, 0
	for _, e := range encounters {
		aSide := sideOf(a, e)
		bSide := sideOf(b, e)
		if aSide == 0 || bSide == 0 || aSide == bSide {
			continue
		}
		if e.Winner == aSide {
			aWins++
		} else if e.Winner == bSide {
			bWins++
		}
	}
	return aWins - bWins
}

func sideOf(id string, e Encounter) int {
	for _, s := range e.SideA {
		if s == id {
			return 1
		}
	}
	for _, s := range e.SideB {
		if s == id {
			return 2
		}
	}
	return 0
}
