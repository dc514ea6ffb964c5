package schedule

import (
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// History is the per-run ledger of who has partnered and opposed whom,
// how often each player has played, and how often each has sat out. It is
// owned by a single Generator and never shared across concurrent callers.
type History struct {
	entries map[uuid.UUID]*ledger
}

type ledger struct {
	partners  map[uuid.UUID]bool
	opponents map[uuid.UUID]bool
	played    int
	byes      int
}

// NewHistory creates an empty ledger scoped to the given player pool.
// Updates referencing players outside the pool are silently dropped.
func NewHistory(ids []uuid.UUID) *History {
	entries := make(map[uuid.UUID]*ledger, len(ids))
	for _, id := range ids {
		entries[id] = &ledger{
			partners:  make(map[uuid.UUID]bool),
			opponents: make(map[uuid.UUID]bool),
		}
	}
	return &History{entries: entries}
}

// Seed replays previously persisted matches into the ledger. Matches that
// reference a player no longer in the pool are skipped entirely, which keeps
// the partner/opponent relations symmetric; historical data routinely points
// at players who have since left the roster.
func (h *History) Seed(past []event.Match) {
	for i := range past {
		m := &past[i]
		known := true
		for _, id := range m.Players() {
			if _, ok := h.entries[id]; !ok {
				known = false
				break
			}
		}
		if !known {
			continue
		}
		if m.IsBye {
			if len(m.Players()) == 1 {
				h.RecordBye(m.Players()[0])
			}
			continue
		}
		h.RecordMatch(m.TeamA(), m.TeamB())
	}
}

// RecordMatch updates partner sets within each team, opponent sets across
// teams, and play counts, for exactly the players involved. Unknown player
// IDs are ignored.
func (h *History) RecordMatch(teamA, teamB []uuid.UUID) {
	h.recordPartners(teamA)
	h.recordPartners(teamB)
	for _, a := range teamA {
		for _, b := range teamB {
			h.recordOpponents(a, b)
		}
	}
	for _, id := range append(append([]uuid.UUID{}, teamA...), teamB...) {
		if e, ok := h.entries[id]; ok {
			e.played++
		}
	}
}

func (h *History) RecordBye(id uuid.UUID) {
	if e, ok := h.entries[id]; ok {
		e.byes++
	}
}

func (h *History) recordPartners(team []uuid.UUID) {
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			a, ok1 := h.entries[team[i]]
			b, ok2 := h.entries[team[j]]
			if !ok1 || !ok2 {
				continue
			}
			a.partners[team[j]] = true
			b.partners[team[i]] = true
		}
	}
}

func (h *History) recordOpponents(x, y uuid.UUID) {
	a, ok1 := h.entries[x]
	b, ok2 := h.entries[y]
	if !ok1 || !ok2 {
		return
	}
	a.opponents[y] = true
	b.opponents[x] = true
}

func (h *History) HasPartnered(a, b uuid.UUID) bool {
	if e, ok := h.entries[a]; ok {
		return e.partners[b]
	}
	return false
}

func (h *History) HasOpposed(a, b uuid.UUID) bool {
	if e, ok := h.entries[a]; ok {
		return e.opponents[b]
	}
	return false
}

func (h *History) PlayCount(id uuid.UUID) int {
	if e, ok := h.entries[id]; ok {
		return e.played
	}
	return 0
}

func (h *History) ByeCount(id uuid.UUID) int {
	if e, ok := h.entries[id]; ok {
		return e.byes
	}
	return 0
}
