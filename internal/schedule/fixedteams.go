package schedule

import (
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// FixedTeamsStrategy runs a round-robin over permanent partnerships:
// roster entries 2i and 2i+1 form team i for the life of the event. Each
// round rotates which team meets which by indexing with
// (court*2 + round − 1) mod teamCount, which cycles through distinct
// opponents before any repeat once the team count is even.
type FixedTeamsStrategy struct{}

func (FixedTeamsStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 4 {
		return nil, &InsufficientPlayersError{Required: 4, Actual: len(pool)}
	}

	teams := make([][2]uuid.UUID, 0, len(pool)/2)
	for i := 0; i+1 < len(pool); i += 2 {
		teams = append(teams, [2]uuid.UUID{pool[i].ID, pool[i+1].ID})
	}
	teamCount := len(teams)

	playing := make(map[int]bool, teamCount)
	var out []Pairing
	usable := min(courts, teamCount/2)
	for court := 0; court < usable; court++ {
		a := (court*2 + round - 1) % teamCount
		b := (court*2 + round) % teamCount
		if a == b || playing[a] || playing[b] {
			continue
		}
		playing[a], playing[b] = true, true
		out = append(out, Pairing{
			Court: court + 1,
			TeamA: teams[a][:],
			TeamB: teams[b][:],
		})
	}

	// Teams left off the rotation this round, and an unpaired trailing
	// roster entry, sit out with a BYE.
	for i, team := range teams {
		if !playing[i] {
			out = append(out, byePairing(team[0]), byePairing(team[1]))
		}
	}
	if len(pool)%2 != 0 {
		out = append(out, byePairing(pool[len(pool)-1].ID))
	}
	return out, nil
}
