package schedule

import "github.com/google/uuid"

// Pairing is one court's worth of play for a round. TeamA holds slots 1 and
// 3, TeamB slots 2 and 4. A pairing with a single TeamA player and an empty
// TeamB is a BYE.
type Pairing struct {
	Court int
	TeamA []uuid.UUID
	TeamB []uuid.UUID
}

func (p Pairing) IsBye() bool {
	return len(p.TeamA) == 1 && len(p.TeamB) == 0
}

// Players returns everyone in the pairing, team A first.
func (p Pairing) Players() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.TeamA)+len(p.TeamB))
	out = append(out, p.TeamA...)
	out = append(out, p.TeamB...)
	return out
}

func byePairing(id uuid.UUID) Pairing {
	return Pairing{TeamA: []uuid.UUID{id}}
}

// Round is one generated scheduling cycle.
type Round struct {
	Number   int
	Pairings []Pairing
}
