package schedule

import (
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// KingOfCourtStrategy snake-seeds the ranked roster into court-sized groups
// for the opening round. The "winners stay" continuation is a per-round
// decision made by the host, not by this engine.
type KingOfCourtStrategy struct{}

func (KingOfCourtStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 4 {
		return nil, &InsufficientPlayersError{Required: 4, Actual: len(pool)}
	}

	ranked := sortByRank(pool)
	groups := min(courts, len(ranked)/4)

	courtsOf := make([][]uuid.UUID, groups)
	seated := groups * 4
	idx, dir := 0, 1
	for _, p := range ranked[:seated] {
		courtsOf[idx] = append(courtsOf[idx], p.ID)
		idx, dir = snakeStep(idx, dir, groups)
	}

	out := make([]Pairing, 0, groups)
	for i, group := range courtsOf {
		// Within a court, the strongest and weakest seeds team up
		// against the middle two.
		out = append(out, Pairing{
			Court: i + 1,
			TeamA: []uuid.UUID{group[0], group[3]},
			TeamB: []uuid.UUID{group[1], group[2]},
		})
	}
	for _, p := range ranked[seated:] {
		out = append(out, byePairing(p.ID))
	}
	return out, nil
}

// snakeStep advances a boustrophedon walk over court indices: at either end
// the walk stays put for one placement and reverses, so end courts receive
// back-to-back seeds the way snake drafts do.
func snakeStep(idx, dir, n int) (int, int) {
	next := idx + dir
	if next < 0 || next >= n {
		return idx, -dir
	}
	return next, dir
}
