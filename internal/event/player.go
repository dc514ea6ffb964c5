package event

import "github.com/google/uuid"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Player belongs to a single event. The aggregate stats columns are only
// ever written through the standings aggregator's deltas.
type Player struct {
	ID      uuid.UUID `db:"id" json:"id"`
	EventID uuid.UUID `db:"event_id" json:"event_id"`
	Name    string    `db:"name" json:"name"`
	Gender  *Gender   `db:"gender" json:"gender,omitempty"`
	Team    *string   `db:"team" json:"team,omitempty"`

	Wins      int `db:"wins" json:"wins"`
	Losses    int `db:"losses" json:"losses"`
	GamesWon  int `db:"games_won" json:"games_won"`
	GamesLost int `db:"games_lost" json:"games_lost"`
}

func (p *Player) GamesDiff() int {
	return p.GamesWon - p.GamesLost
}

func (p *Player) TeamName() string {
	if p.Team == nil {
		return ""
	}
	return *p.Team
}
