package schedule

import (
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/event"
)

// Generator produces rounds sequentially for one player pool, folding each
// generated round back into its history so round k+1 avoids round k's
// partnerships. It is a pure computation over its inputs: no I/O, no
// suspension points, safe to run on a request-handling goroutine. It is not
// safe for concurrent use; each invocation owns its own Generator.
type Generator struct {
	players   []event.Player
	courts    int
	strategy  Strategy
	history   *History
	nextRound int
}

// NewGenerator builds a generator over the full pool. Previously persisted
// matches seed the partner/opponent history, and firstRound is the absolute
// number the next generated round should carry (1 for a fresh event).
func NewGenerator(players []event.Player, courts int, strategy Strategy, past []event.Match, firstRound int) *Generator {
	ids := make([]uuid.UUID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	h := NewHistory(ids)
	h.Seed(past)
	if firstRound < 1 {
		firstRound = 1
	}
	return &Generator{
		players:   players,
		courts:    courts,
		strategy:  strategy,
		history:   h,
		nextRound: firstRound,
	}
}

// GenerateRounds produces n rounds. Generation fails fast on the first
// error with nothing produced; a partially generated batch is never
// returned.
func (g *Generator) GenerateRounds(n int) ([]Round, error) {
	rounds := make([]Round, 0, n)
	for i := 0; i < n; i++ {
		pairings, err := g.strategy.Pairings(g.players, g.courts, g.nextRound, g.history)
		if err != nil {
			return nil, err
		}
		for _, p := range pairings {
			if p.IsBye() {
				g.history.RecordBye(p.TeamA[0])
				continue
			}
			g.history.RecordMatch(p.TeamA, p.TeamB)
		}
		rounds = append(rounds, Round{Number: g.nextRound, Pairings: pairings})
		g.nextRound++
	}
	return rounds, nil
}

// History exposes the generator's ledger for inspection.
func (g *Generator) History() *History {
	return g.history
}
