package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mhutchins/open-play-app/internal/event"
)

type EventStore struct {
	db *sqlx.DB
}

func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) CreateEvent(ctx context.Context, tx *sqlx.Tx, ev *event.Event) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO events (id, name, format, courts, scoring, scoring_target, status)
        VALUES (:id, :name, :format, :courts, :scoring, :scoring_target, :status)`, ev)
	return err
}

func (s *EventStore) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	var ev event.Event
	err := s.db.GetContext(ctx, &ev, "SELECT * FROM events WHERE id = ?", id)
	return &ev, err
}

func (s *EventStore) CreatePlayers(ctx context.Context, tx *sqlx.Tx, players []event.Player) error {
	if len(players) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO players (id, event_id, name, gender, team, wins, losses, games_won, games_lost)
            VALUES (:id, :event_id, :name, :gender, :team, :wins, :losses, :games_won, :games_lost)`, players)
	return err
}

// GetPlayers returns the event roster in joining order, which fixed-team
// formats rely on for partnership assignment.
func (s *EventStore) GetPlayers(ctx context.Context, eventID string) ([]event.Player, error) {
	var players []event.Player
	err := s.db.SelectContext(ctx, &players, "SELECT * FROM players WHERE event_id = ? ORDER BY rowid ASC", eventID)
	return players, err
}

func (s *EventStore) UpdatePlayerStatsTx(ctx context.Context, tx *sqlx.Tx, p *event.Player) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE players SET
        wins = :wins, losses = :losses, games_won = :games_won, games_lost = :games_lost
        WHERE id = :id`, p)
	return err
}

func (s *EventStore) CreateRound(ctx context.Context, tx *sqlx.Tx, round *event.Round) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO rounds (id, event_id, number, status)
        VALUES (:id, :event_id, :number, :status)`, round)
	return err
}

func (s *EventStore) GetRound(ctx context.Context, id string) (*event.Round, error) {
	var round event.Round
	err := s.db.GetContext(ctx, &round, "SELECT * FROM rounds WHERE id = ?", id)
	return &round, err
}

func (s *EventStore) GetRounds(ctx context.Context, eventID string) ([]event.Round, error) {
	var rounds []event.Round
	err := s.db.SelectContext(ctx, &rounds, "SELECT * FROM rounds WHERE event_id = ? ORDER BY number ASC", eventID)
	return rounds, err
}

func (s *EventStore) CountRounds(ctx context.Context, eventID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM rounds WHERE event_id = ?", eventID)
	return n, err
}

func (s *EventStore) UpdateRoundStatus(ctx context.Context, id string, status event.RoundStatus) error {
	_, err := s.db.ExecContext(ctx, "UPDATE rounds SET status = ? WHERE id = ?", status, id)
	return err
}

func (s *EventStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []event.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, event_id, round_id, court, player_1_id, player_2_id, player_3_id, player_4_id, is_bye, score_1, score_2, winner, tiebreak_winner, status)
		VALUES (:id, :event_id, :round_id, :court, :player_1_id, :player_2_id, :player_3_id, :player_4_id, :is_bye, :score_1, :score_2, :winner, :tiebreak_winner, :status)`, matches)
	return err
}

func (s *EventStore) GetMatch(ctx context.Context, id string) (*event.Match, error) {
	var m event.Match
	err := s.db.GetContext(ctx, &m, "SELECT * FROM matches WHERE id = ?", id)
	return &m, err
}

func (s *EventStore) GetMatches(ctx context.Context, eventID string) ([]event.Match, error) {
	var matches []event.Match
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE event_id = ? ORDER BY created_at ASC, court ASC", eventID)
	return matches, err
}

func (s *EventStore) GetMatchesByRound(ctx context.Context, roundID string) ([]event.Match, error) {
	var matches []event.Match
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE round_id = ? ORDER BY court ASC", roundID)
	return matches, err
}

func (s *EventStore) GetCompletedMatches(ctx context.Context, eventID string) ([]event.Match, error) {
	var matches []event.Match
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE event_id = ? AND status = ? ORDER BY created_at ASC", eventID, event.MatchCompleted)
	return matches, err
}

func (s *EventStore) UpdateMatchScore(ctx context.Context, tx *sqlx.Tx, m *event.Match) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE matches SET
        score_1 = :score_1, score_2 = :score_2, winner = :winner, tiebreak_winner = :tiebreak_winner, status = :status
        WHERE id = :id`, m)
	return err
}
