package schedule

import (
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// TeamBattleStrategy pits two named teams against each other across a mix
// of singles and doubles courts. When no explicit split is given it
// searches every feasible doubles-court count for the split with the
// fewest BYEs; ties go to the most doubles-heavy split to keep variety
// pressure on the partnerships.
type TeamBattleStrategy struct {
	// Optional court-type hints. When DoublesCourts+SinglesCourts > 0 the
	// requested split is used as far as the rosters allow.
	DoublesCourts int
	SinglesCourts int
}

func (s TeamBattleStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 2 {
		return nil, &InsufficientPlayersError{Required: 2, Actual: len(pool)}
	}

	byTeam := make(map[string][]event.Player)
	for _, p := range pool {
		if p.Team == nil || *p.Team == "" {
			continue
		}
		byTeam[*p.Team] = append(byTeam[*p.Team], p)
	}
	if len(byTeam) != 2 {
		return nil, ErrTeamsNotConfigured
	}

	var rosters [][]event.Player
	for _, name := range sortedTeamNames(byTeam) {
		rosters = append(rosters, sortByPriority(byTeam[name], h))
	}
	smaller := min(len(rosters[0]), len(rosters[1]))

	doubles, singles := s.DoublesCourts, s.SinglesCourts
	if doubles+singles > 0 {
		doubles, singles = clampSplit(doubles, singles, courts, smaller)
	} else {
		doubles, singles = bestSplit(courts, len(rosters[0]), len(rosters[1]))
	}

	var out []Pairing
	court := 1
	for i := 0; i < doubles; i++ {
		out = append(out, Pairing{
			Court: court,
			TeamA: []uuid.UUID{rosters[0][0].ID, rosters[0][1].ID},
			TeamB: []uuid.UUID{rosters[1][0].ID, rosters[1][1].ID},
		})
		rosters[0], rosters[1] = rosters[0][2:], rosters[1][2:]
		court++
	}
	for i := 0; i < singles; i++ {
		out = append(out, Pairing{
			Court: court,
			TeamA: []uuid.UUID{rosters[0][0].ID},
			TeamB: []uuid.UUID{rosters[1][0].ID},
		})
		rosters[0], rosters[1] = rosters[0][1:], rosters[1][1:]
		court++
	}
	for _, roster := range rosters {
		for _, p := range roster {
			out = append(out, byePairing(p.ID))
		}
	}
	return out, nil
}

// bestSplit searches doubles-court counts from the most doubles-heavy down,
// keeping the first split with the fewest total BYEs.
func bestSplit(courts, sizeA, sizeB int) (doubles, singles int) {
	smaller := min(sizeA, sizeB)
	bestByes := -1
	for d := courts; d >= 0; d-- {
		used := 2 * d
		if used > smaller {
			continue
		}
		s := min(courts-d, smaller-used)
		perTeam := used + s
		byes := (sizeA - perTeam) + (sizeB - perTeam)
		if bestByes == -1 || byes < bestByes {
			doubles, singles, bestByes = d, s, byes
		}
	}
	return doubles, singles
}

func clampSplit(doubles, singles, courts, perTeam int) (int, int) {
	doubles = min(doubles, min(courts, perTeam/2))
	singles = min(singles, min(courts-doubles, perTeam-2*doubles))
	return doubles, singles
}

func sortedTeamNames(byTeam map[string][]event.Player) []string {
	names := make([]string, 0, len(byTeam))
	for name := range byTeam {
		names = append(names, name)
	}
	if len(names) == 2 && names[0] > names[1] {
		names[0], names[1] = names[1], names[0]
	}
	return names
}
