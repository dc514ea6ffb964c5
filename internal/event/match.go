package event

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
)

// Match is one court assignment within a round. Slots 1 and 3 form team A,
// slots 2 and 4 team B; a match with only slot 1 filled is a BYE. Winner is
// 0 while unscored, otherwise 1 or 2.
type Match struct {
	ID      uuid.UUID `db:"id" json:"id"`
	EventID uuid.UUID `db:"event_id" json:"event_id"`
	RoundID uuid.UUID `db:"round_id" json:"round_id"`
	Court   int       `db:"court" json:"court"`

	Player1ID *uuid.UUID `db:"player_1_id" json:"player_1_id,omitempty"`
	Player2ID *uuid.UUID `db:"player_2_id" json:"player_2_id,omitempty"`
	Player3ID *uuid.UUID `db:"player_3_id" json:"player_3_id,omitempty"`
	Player4ID *uuid.UUID `db:"player_4_id" json:"player_4_id,omitempty"`

	IsBye bool `db:"is_bye" json:"is_bye"`

	Score1         int         `db:"score_1" json:"score_1"`
	Score2         int         `db:"score_2" json:"score_2"`
	Winner         int         `db:"winner" json:"winner"`
	TiebreakWinner *int        `db:"tiebreak_winner" json:"tiebreak_winner,omitempty"`
	Status         MatchStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeamA returns the players in slots 1 and 3, skipping empty slots.
func (m *Match) TeamA() []uuid.UUID {
	return collect(m.Player1ID, m.Player3ID)
}

// TeamB returns the players in slots 2 and 4, skipping empty slots.
func (m *Match) TeamB() []uuid.UUID {
	return collect(m.Player2ID, m.Player4ID)
}

// Players returns every player in the match in slot order.
func (m *Match) Players() []uuid.UUID {
	return collect(m.Player1ID, m.Player2ID, m.Player3ID, m.Player4ID)
}

func (m *Match) Has(id uuid.UUID) bool {
	for _, p := range m.Players() {
		if p == id {
			return true
		}
	}
	return false
}

func collect(ids ...*uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}
