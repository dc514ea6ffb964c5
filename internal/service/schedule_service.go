package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mhutchins/open-play-app/internal/event"
	"github.com/mhutchins/open-play-app/internal/schedule"
	"github.com/mhutchins/open-play-app/internal/store"
	"github.com/mhutchins/open-play-app/internal/utils"
)

var ErrInvalidRoundTransition = errors.New("illegal round status transition")

type ScheduleService struct {
	db    *sqlx.DB
	store *store.EventStore
}

func NewScheduleService(db *sqlx.DB, store *store.EventStore) *ScheduleService {
	return &ScheduleService{db: db, store: store}
}

type PlayerInput struct {
	Name   string
	Gender string
	Team   string
}

type CreateEventInput struct {
	Name          string
	Format        event.FormatTag
	Courts        int
	Scoring       event.ScoringFormat
	ScoringTarget int
	Players       []PlayerInput
}

func (s *ScheduleService) CreateEvent(ctx context.Context, input CreateEventInput) (uuid.UUID, error) {
	ev := event.Event{
		ID:            uuid.New(),
		Name:          input.Name,
		Format:        input.Format,
		Courts:        input.Courts,
		Scoring:       input.Scoring,
		ScoringTarget: input.ScoringTarget,
		Status:        event.EventDraft,
	}
	if ev.Scoring == "" {
		ev.Scoring = event.ScoringFlexible
	}
	if _, err := schedule.StrategyFor(&ev); err != nil {
		return uuid.Nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateEvent(ctx, tx, &ev); err != nil {
		return uuid.Nil, err
	}

	players := make([]event.Player, 0, len(input.Players))
	for _, in := range input.Players {
		p := event.Player{
			ID:      uuid.New(),
			EventID: ev.ID,
			Name:    in.Name,
			Team:    utils.StringOrNil(in.Team),
		}
		switch event.Gender(in.Gender) {
		case event.GenderMale, event.GenderFemale:
			p.Gender = utils.Ptr(event.Gender(in.Gender))
		}
		players = append(players, p)
	}
	if err := s.store.CreatePlayers(ctx, tx, players); err != nil {
		return uuid.Nil, err
	}

	return ev.ID, tx.Commit()
}

type EventData struct {
	Event   *event.Event
	Players []event.Player
	Rounds  []event.Round
	Matches []event.Match
}

func (s *ScheduleService) GetEventData(ctx context.Context, id string) (*EventData, error) {
	ev, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	players, err := s.store.GetPlayers(ctx, id)
	if err != nil {
		return nil, err
	}

	rounds, err := s.store.GetRounds(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.GetMatches(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EventData{
		Event:   ev,
		Players: players,
		Rounds:  rounds,
		Matches: matches,
	}, nil
}

type GenerateRoundsInput struct {
	Count int
	// Team-battle court-type hints; zero means search for the split with
	// the fewest BYEs.
	DoublesCourts int
	SinglesCourts int
}

type GeneratedRounds struct {
	Rounds  []event.Round
	Matches []event.Match
}

// GenerateRounds runs the pairing engine over the current roster and the
// event's full match history, then persists the resulting rounds and court
// assignments in one transaction. Nothing is written when generation fails.
func (s *ScheduleService) GenerateRounds(ctx context.Context, eventID uuid.UUID, input GenerateRoundsInput) (*GeneratedRounds, error) {
	if input.Count < 1 {
		input.Count = 1
	}

	ev, err := s.store.GetEvent(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	players, err := s.store.GetPlayers(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	past, err := s.store.GetMatches(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	existing, err := s.store.CountRounds(ctx, eventID.String())
	if err != nil {
		return nil, err
	}

	strategy, err := schedule.StrategyFor(ev)
	if err != nil {
		return nil, err
	}
	if tb, ok := strategy.(schedule.TeamBattleStrategy); ok {
		tb.DoublesCourts = input.DoublesCourts
		tb.SinglesCourts = input.SinglesCourts
		strategy = tb
	}

	gen := schedule.NewGenerator(players, ev.Courts, strategy, past, existing+1)
	rounds, err := gen.GenerateRounds(input.Count)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := &GeneratedRounds{}
	for _, round := range rounds {
		row := event.Round{
			ID:      uuid.New(),
			EventID: ev.ID,
			Number:  round.Number,
			Status:  event.RoundUpcoming,
		}
		if err := s.store.CreateRound(ctx, tx, &row); err != nil {
			return nil, fmt.Errorf("failed to create round %d: %w", round.Number, err)
		}

		matches := make([]event.Match, 0, len(round.Pairings))
		for _, p := range round.Pairings {
			matches = append(matches, matchFromPairing(ev.ID, row.ID, p))
		}
		if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
			return nil, fmt.Errorf("failed to create matches for round %d: %w", round.Number, err)
		}

		out.Rounds = append(out.Rounds, row)
		out.Matches = append(out.Matches, matches...)
	}

	return out, tx.Commit()
}

// AdvanceRound moves a round one step through its lifecycle. Rounds only
// move forward: upcoming, in progress, completed.
func (s *ScheduleService) AdvanceRound(ctx context.Context, roundID uuid.UUID, to event.RoundStatus) (*event.Round, error) {
	round, err := s.store.GetRound(ctx, roundID.String())
	if err != nil {
		return nil, err
	}

	if !round.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidRoundTransition, round.Status, to)
	}

	if err := s.store.UpdateRoundStatus(ctx, roundID.String(), to); err != nil {
		return nil, err
	}
	round.Status = to
	return round, nil
}

func matchFromPairing(eventID, roundID uuid.UUID, p schedule.Pairing) event.Match {
	m := event.Match{
		ID:      uuid.New(),
		EventID: eventID,
		RoundID: roundID,
		Court:   p.Court,
		IsBye:   p.IsBye(),
		Status:  event.MatchScheduled,
	}
	if len(p.TeamA) > 0 {
		m.Player1ID = utils.Ptr(p.TeamA[0])
	}
	if len(p.TeamA) > 1 {
		m.Player3ID = utils.Ptr(p.TeamA[1])
	}
	if len(p.TeamB) > 0 {
		m.Player2ID = utils.Ptr(p.TeamB[0])
	}
	if len(p.TeamB) > 1 {
		m.Player4ID = utils.Ptr(p.TeamB[1])
	}
	return m
}
