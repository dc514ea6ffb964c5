package schedule

import (
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// MixedDoublesStrategy pairs strictly in rank order within each gender so
// every team fields exactly one man and one woman. The achievable match
// count is bounded by min(courts, floor(men/2), floor(women/2)); surplus
// players of either gender simply sit out the round without a BYE entry.
type MixedDoublesStrategy struct{}

func (MixedDoublesStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 4 {
		return nil, &InsufficientPlayersError{Required: 4, Actual: len(pool)}
	}

	var men, women []event.Player
	for _, p := range pool {
		if p.Gender == nil {
			continue
		}
		switch *p.Gender {
		case event.GenderMale:
			men = append(men, p)
		case event.GenderFemale:
			women = append(women, p)
		}
	}
	men = sortByRank(men)
	women = sortByRank(women)

	matches := min(courts, min(len(men)/2, len(women)/2))
	out := make([]Pairing, 0, matches)
	for i := 0; i < matches; i++ {
		a, b := 2*i, 2*i+1
		out = append(out, Pairing{
			Court: i + 1,
			TeamA: []uuid.UUID{men[a].ID, women[a].ID},
			TeamB: []uuid.UUID{men[b].ID, women[b].ID},
		})
	}
	return out, nil
}
