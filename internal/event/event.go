package event

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
)

// FormatTag selects the pairing strategy used when generating rounds.
type FormatTag string

const (
	FormatSingles      FormatTag = "singles"
	FormatDoubles      FormatTag = "doubles"
	FormatMixedDoubles FormatTag = "mixed_doubles"
	FormatCourtMax     FormatTag = "court_max"
	FormatFixedTeams   FormatTag = "fixed_teams"
	FormatTeamBattle   FormatTag = "team_battle"
	FormatKingOfCourt  FormatTag = "king_of_court"
)

type ScoringFormat string

const (
	ScoringFixedGames ScoringFormat = "fixed_games"
	ScoringFirstTo    ScoringFormat = "first_to"
	ScoringFlexible   ScoringFormat = "flexible"
)

type Event struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Format        FormatTag     `db:"format" json:"format"`
	Courts        int           `db:"courts" json:"courts"`
	Scoring       ScoringFormat `db:"scoring" json:"scoring"`
	ScoringTarget int           `db:"scoring_target" json:"scoring_target"`
	Status        EventStatus   `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
