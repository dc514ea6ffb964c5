package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mhutchins/open-play-app/internal/event"
	"github.com/mhutchins/open-play-app/internal/standings"
	"github.com/mhutchins/open-play-app/internal/store"
)

var ErrByeNotScorable = errors.New("a bye pairing cannot be scored")

type ScoreService struct {
	db    *sqlx.DB
	store *store.EventStore
}

func NewScoreService(db *sqlx.DB, store *store.EventStore) *ScoreService {
	return &ScoreService{db: db, store: store}
}

// RecordScore validates and applies a match result. Re-submitting a score
// first reverses the delta the previous result contributed to player stats,
// so corrections converge instead of accumulating. All reads happen before
// the transaction opens so they never contend with it for a connection; the
// transaction covers the match row and the stats of its players only.
// Concurrent writes to the same match must be serialized by callers.
func (s *ScoreService) RecordScore(ctx context.Context, matchID uuid.UUID, score1, score2 int, tiebreakWinner *int) (*event.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if m.IsBye {
		return nil, ErrByeNotScorable
	}

	ev, err := s.store.GetEvent(ctx, m.EventID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	rule := standings.Rule{Format: ev.Scoring, Target: ev.ScoringTarget}
	newRes, err := rule.Resolve(score1, score2, tiebreakWinner)
	if err != nil {
		return nil, err
	}

	var oldRes *standings.Result
	if m.Status == event.MatchCompleted {
		oldRes = &standings.Result{Score1: m.Score1, Score2: m.Score2, Winner: m.Winner}
	}

	players, err := s.store.GetPlayers(ctx, m.EventID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	records := make(map[string]*standings.Record, len(players))
	index := make(map[string]*event.Player, len(players))
	for i := range players {
		p := &players[i]
		records[p.ID.String()] = &standings.Record{
			EntityID:  p.ID.String(),
			Name:      p.Name,
			Wins:      p.Wins,
			Losses:    p.Losses,
			GamesWon:  p.GamesWon,
			GamesLost: p.GamesLost,
		}
		index[p.ID.String()] = p
	}

	standings.ApplyResult(records, idStrings(m.TeamA()), idStrings(m.TeamB()), oldRes, &newRes)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, id := range m.Players() {
		p := index[id.String()]
		r := records[id.String()]
		if p == nil || r == nil {
			continue
		}
		p.Wins, p.Losses = r.Wins, r.Losses
		p.GamesWon, p.GamesLost = r.GamesWon, r.GamesLost
		if err := s.store.UpdatePlayerStatsTx(ctx, tx, p); err != nil {
			return nil, fmt.Errorf("failed to update player stats: %w", err)
		}
	}

	m.Score1, m.Score2 = score1, score2
	m.Winner = newRes.Winner
	m.TiebreakWinner = tiebreakWinner
	m.Status = event.MatchCompleted
	if err := s.store.UpdateMatchScore(ctx, tx, m); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return m, tx.Commit()
}

// Standings returns the ranked table for an event: per player for most
// formats, per named team for team battles, where the team totals are
// rebuilt from the completed matches.
func (s *ScoreService) Standings(ctx context.Context, eventID uuid.UUID) ([]standings.Ranked, error) {
	ev, err := s.store.GetEvent(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	players, err := s.store.GetPlayers(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	completed, err := s.store.GetCompletedMatches(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	if ev.Format == event.FormatTeamBattle {
		return teamStandings(players, completed), nil
	}

	records := make([]standings.Record, 0, len(players))
	for _, p := range players {
		records = append(records, standings.Record{
			EntityID:  p.ID.String(),
			Name:      p.Name,
			Wins:      p.Wins,
			Losses:    p.Losses,
			GamesWon:  p.GamesWon,
			GamesLost: p.GamesLost,
		})
	}

	encounters := make([]standings.Encounter, 0, len(completed))
	for i := range completed {
		m := &completed[i]
		encounters = append(encounters, standings.Encounter{
			SideA:  idStrings(m.TeamA()),
			SideB:  idStrings(m.TeamB()),
			Winner: m.Winner,
		})
	}

	return standings.Rank(records, encounters), nil
}

func teamStandings(players []event.Player, completed []event.Match) []standings.Ranked {
	teamOf := make(map[string]string, len(players))
	recordMap := make(map[string]*standings.Record)
	for _, p := range players {
		name := p.TeamName()
		if name == "" {
			continue
		}
		teamOf[p.ID.String()] = name
		if _, ok := recordMap[name]; !ok {
			recordMap[name] = &standings.Record{EntityID: name, Name: name}
		}
	}

	var encounters []standings.Encounter
	for i := range completed {
		m := &completed[i]
		sideA := teamSide(teamOf, idStrings(m.TeamA()))
		sideB := teamSide(teamOf, idStrings(m.TeamB()))
		if len(sideA) == 0 || len(sideB) == 0 {
			continue
		}
		res := standings.Result{Score1: m.Score1, Score2: m.Score2, Winner: m.Winner}
		standings.ApplyResult(recordMap, sideA, sideB, nil, &res)
		encounters = append(encounters, standings.Encounter{SideA: sideA, SideB: sideB, Winner: m.Winner})
	}

	records := make([]standings.Record, 0, len(recordMap))
	for _, r := range recordMap {
		records = append(records, *r)
	}
	return standings.Rank(records, encounters)
}

// teamSide collapses a slot side to its unique team names.
func teamSide(teamOf map[string]string, ids []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range ids {
		name := teamOf[id]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
