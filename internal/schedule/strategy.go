package schedule

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// SearchWindow bounds how many of the highest-priority players are examined
// when forming the next grouping. Best-of-window rather than best-of-all:
// enumerating every 4-subset of a full roster is combinatorially explosive,
// so the search trades optimality for a tractable running time.
const SearchWindow = 8

// Strategy produces one round's pairings for a competition format. The
// round number is the absolute round being generated; only rotation-based
// formats consult it.
type Strategy interface {
	Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error)
}

// StrategyFor maps a persisted format tag onto its strategy. Formats are a
// closed set; an unrecognized tag is a caller error, not a fallback.
func StrategyFor(ev *event.Event) (Strategy, error) {
	switch ev.Format {
	case event.FormatSingles:
		return SinglesStrategy{}, nil
	case event.FormatDoubles:
		return DoublesStrategy{}, nil
	case event.FormatMixedDoubles:
		return MixedDoublesStrategy{}, nil
	case event.FormatCourtMax:
		return CourtMaxStrategy{}, nil
	case event.FormatFixedTeams:
		return FixedTeamsStrategy{}, nil
	case event.FormatTeamBattle:
		return TeamBattleStrategy{}, nil
	case event.FormatKingOfCourt:
		return KingOfCourtStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ev.Format)
	}
}

// sortByPriority orders a copy of the pool so that players who have sat out
// the most, then played the least, then won the most come first. This is
// what makes repeated generation swiss-like: standings and history drive
// who plays next, not a fixed bracket.
func sortByPriority(pool []event.Player, h *History) []event.Player {
	avail := make([]event.Player, len(pool))
	copy(avail, pool)
	sort.SliceStable(avail, func(i, j int) bool {
		a, b := &avail[i], &avail[j]
		if x, y := h.ByeCount(a.ID), h.ByeCount(b.ID); x != y {
			return x > y
		}
		if x, y := h.PlayCount(a.ID), h.PlayCount(b.ID); x != y {
			return x < y
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Name < b.Name
	})
	return avail
}

// sortByRank orders a copy of the pool by current standing: wins, then
// games differential, then name for determinism.
func sortByRank(pool []event.Player) []event.Player {
	ranked := make([]event.Player, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GamesDiff() != b.GamesDiff() {
			return a.GamesDiff() > b.GamesDiff()
		}
		return a.Name < b.Name
	})
	return ranked
}

// bestFoursome picks the best-scoring doubles grouping from the front
// window of the availability list and returns it with the remaining pool.
func bestFoursome(avail []event.Player, h *History) (Pairing, []event.Player) {
	window := avail
	if len(window) > SearchWindow {
		window = window[:SearchWindow]
	}

	best := Pairing{}
	bestScore := 0
	found := false
	for i := 0; i < len(window); i++ {
		for j := i + 1; j < len(window); j++ {
			for k := j + 1; k < len(window); k++ {
				for l := k + 1; l < len(window); l++ {
					group := [4]uuid.UUID{window[i].ID, window[j].ID, window[k].ID, window[l].ID}
					for _, split := range teamSplits(group) {
						score := h.Score(split.TeamA, split.TeamB)
						if !found || score > bestScore {
							best = split
							bestScore = score
							found = true
						}
					}
				}
			}
		}
	}
	return best, removePlayers(avail, best.Players())
}

// bestPair is the singles analogue of bestFoursome.
func bestPair(avail []event.Player, h *History) (Pairing, []event.Player) {
	window := avail
	if len(window) > SearchWindow {
		window = window[:SearchWindow]
	}

	best := Pairing{}
	bestScore := 0
	found := false
	for i := 0; i < len(window); i++ {
		for j := i + 1; j < len(window); j++ {
			p := Pairing{
				TeamA: []uuid.UUID{window[i].ID},
				TeamB: []uuid.UUID{window[j].ID},
			}
			score := h.Score(p.TeamA, p.TeamB)
			if !found || score > bestScore {
				best = p
				bestScore = score
				found = true
			}
		}
	}
	return best, removePlayers(avail, best.Players())
}

// teamSplits enumerates the three ways to split four players into two teams.
func teamSplits(g [4]uuid.UUID) []Pairing {
	return []Pairing{
		{TeamA: []uuid.UUID{g[0], g[1]}, TeamB: []uuid.UUID{g[2], g[3]}},
		{TeamA: []uuid.UUID{g[0], g[2]}, TeamB: []uuid.UUID{g[1], g[3]}},
		{TeamA: []uuid.UUID{g[0], g[3]}, TeamB: []uuid.UUID{g[1], g[2]}},
	}
}

func removePlayers(pool []event.Player, ids []uuid.UUID) []event.Player {
	taken := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		taken[id] = true
	}
	out := pool[:0:0]
	for _, p := range pool {
		if !taken[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
