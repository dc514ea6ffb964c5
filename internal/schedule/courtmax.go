package schedule

import "github.com/mhutchins/open-play-app/internal/event"

// CourtMaxStrategy fills as many doubles courts as fit and uses singles
// courts for the remainder, picking the doubles/singles mix that seats the
// most players within the court limit. With enough courts at most one
// player is left without a match.
type CourtMaxStrategy struct{}

func (CourtMaxStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 4 {
		return nil, &InsufficientPlayersError{Required: 4, Actual: len(pool)}
	}

	n := len(pool)
	bestDoubles, bestSingles, bestSeated := 0, 0, -1
	for d := min(courts, n/4); d >= 0; d-- {
		s := min(courts-d, (n-4*d)/2)
		if seated := 4*d + 2*s; seated > bestSeated {
			bestDoubles, bestSingles, bestSeated = d, s, seated
		}
	}

	avail := sortByPriority(pool, h)
	var out []Pairing
	court := 1
	for i := 0; i < bestDoubles; i++ {
		var p Pairing
		p, avail = bestFoursome(avail, h)
		p.Court = court
		out = append(out, p)
		court++
	}
	for i := 0; i < bestSingles; i++ {
		var p Pairing
		p, avail = bestPair(avail, h)
		p.Court = court
		out = append(out, p)
		court++
	}
	for _, p := range avail {
		out = append(out, byePairing(p.ID))
	}
	return out, nil
}
