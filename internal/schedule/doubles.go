package schedule

import "github.com/mhutchins/open-play-app/internal/event"

// DoublesStrategy fills courts with the best-of-window four-player grouping
// until courts run out or fewer than four players remain. Everyone left
// over takes a BYE.
type DoublesStrategy struct{}

func (DoublesStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 4 {
		return nil, &InsufficientPlayersError{Required: 4, Actual: len(pool)}
	}

	avail := sortByPriority(pool, h)
	var out []Pairing
	court := 1
	for court <= courts && len(avail) >= 4 {
		var p Pairing
		p, avail = bestFoursome(avail, h)
		p.Court = court
		out = append(out, p)
		court++
	}
	for _, p := range avail {
		out = append(out, byePairing(p.ID))
	}
	return out, nil
}

// SinglesStrategy is the two-player analogue of DoublesStrategy.
type SinglesStrategy struct{}

func (SinglesStrategy) Pairings(pool []event.Player, courts, round int, h *History) ([]Pairing, error) {
	if len(pool) < 2 {
		return nil, &InsufficientPlayersError{Required: 2, Actual: len(pool)}
	}

	avail := sortByPriority(pool, h)
	var out []Pairing
	court := 1
	for court <= courts && len(avail) >= 2 {
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
