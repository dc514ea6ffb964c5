package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhutchins/open-play-app/internal/event"
	"github.com/mhutchins/open-play-app/internal/schedule"
	"github.com/mhutchins/open-play-app/internal/store"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func rosterInputs(n int) []PlayerInput {
	inputs := make([]PlayerInput, n)
	for i := range inputs {
		inputs[i] = PlayerInput{Name: fmt.Sprintf("Player %02d", i+1)}
	}
	return inputs
}

func TestCreateEventPersistsRoster(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:          "Thursday Mixer",
		Format:        event.FormatMixedDoubles,
		Courts:        2,
		Scoring:       event.ScoringFixedGames,
		ScoringTarget: 8,
		Players: []PlayerInput{
			{Name: "Avery", Gender: "female"},
			{Name: "Blake", Gender: "male"},
			{Name: "Casey", Gender: "nonsense"},
			{Name: "Drew", Team: "Red"},
		},
	})
	require.NoError(t, err)

	data, err := scheduleService.GetEventData(ctx, eventID.String())
	require.NoError(t, err)

	assert.Equal(t, "Thursday Mixer", data.Event.Name)
	assert.Equal(t, event.FormatMixedDoubles, data.Event.Format)
	assert.Equal(t, event.EventDraft, data.Event.Status)
	assert.Empty(t, data.Rounds)

	require.Len(t, data.Players, 4)
	require.NotNil(t, data.Players[0].Gender)
	assert.Equal(t, event.GenderFemale, *data.Players[0].Gender)
	assert.Nil(t, data.Players[2].Gender, "unrecognized gender values are dropped")
	require.NotNil(t, data.Players[3].Team)
	assert.Equal(t, "Red", *data.Players[3].Team)
}

func TestCreateEventDefaultsToFlexibleScoring(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:    "Pickup",
		Format:  event.FormatSingles,
		Courts:  1,
		Players: rosterInputs(2),
	})
	require.NoError(t, err)

	data, err := scheduleService.GetEventData(ctx, eventID.String())
	require.NoError(t, err)
	assert.Equal(t, event.ScoringFlexible, data.Event.Scoring)
}

func TestCreateEventRejectsUnknownFormat(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)

	_, err := scheduleService.CreateEvent(context.Background(), CreateEventInput{
		Name:   "Mystery",
		Format: "triples",
		Courts: 2,
	})
	assert.ErrorIs(t, err, schedule.ErrUnknownFormat)
}

func TestGenerateRoundsPersistsSchedule(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:    "Doubles Night",
		Format:  event.FormatDoubles,
		Courts:  2,
		Players: rosterInputs(8),
	})
	require.NoError(t, err)

	generated, err := scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{Count: 2})
	require.NoError(t, err)

	require.Len(t, generated.Rounds, 2)
	assert.Equal(t, 1, generated.Rounds[0].Number)
	assert.Equal(t, 2, generated.Rounds[1].Number)
	require.Len(t, generated.Matches, 4)
	for _, m := range generated.Matches {
		assert.Equal(t, event.MatchScheduled, m.Status)
		assert.False(t, m.IsBye)
		assert.Len(t, m.Players(), 4)
	}

	// A later batch continues the numbering from what is persisted.
	more, err := scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{Count: 1})
	require.NoError(t, err)
	require.Len(t, more.Rounds, 1)
	assert.Equal(t, 3, more.Rounds[0].Number)

	rounds, err := eventStore.GetRounds(ctx, eventID.String())
	require.NoError(t, err)
	require.Len(t, rounds, 3)
	for _, r := range rounds {
		assert.Equal(t, event.RoundUpcoming, r.Status)
	}
}

func TestGenerateRoundsAvoidsRepeatsAcrossBatches(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:    "One Court",
		Format:  event.FormatDoubles,
		Courts:  1,
		Players: rosterInputs(4),
	})
	require.NoError(t, err)

	first, err := scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{Count: 1})
	require.NoError(t, err)
	second, err := scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{Count: 1})
	require.NoError(t, err)

	require.Len(t, first.Matches, 1)
	require.Len(t, second.Matches, 1)

	// The persisted history must steer the second batch away from
	// repeating round one's partnerships.
	firstTeam := teamKey(first.Matches[0].TeamA())
	assert.NotEqual(t, firstTeam, teamKey(second.Matches[0].TeamA()))
	assert.NotEqual(t, firstTeam, teamKey(second.Matches[0].TeamB()))
}

func teamKey(ids []uuid.UUID) string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

func TestGenerateRoundsWritesNothingOnFailure(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:    "Short Roster",
		Format:  event.FormatDoubles,
		Courts:  2,
		Players: rosterInputs(3),
	})
	require.NoError(t, err)

	_, err = scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{Count: 1})

	var insufficient *schedule.InsufficientPlayersError
	require.ErrorAs(t, err, &insufficient)

	n, err := eventStore.CountRounds(ctx, eventID.String())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGenerateRoundsTeamBattleHints(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:   "Club Battle",
		Format: event.FormatTeamBattle,
		Courts: 2,
		Players: []PlayerInput{
			{Name: "R1", Team: "Red"}, {Name: "R2", Team: "Red"},
			{Name: "B1", Team: "Blue"}, {Name: "B2", Team: "Blue"},
		},
	})
	require.NoError(t, err)

	generated, err := scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{
		Count:         1,
		SinglesCourts: 2,
	})
	require.NoError(t, err)

	require.Len(t, generated.Matches, 2)
	for _, m := range generated.Matches {
		assert.Len(t, m.Players(), 2, "hinted singles courts produce singles matches")
	}
}

func TestAdvanceRoundLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	eventStore := store.NewEventStore(db)
	scheduleService := NewScheduleService(db, eventStore)
	ctx := context.Background()

	eventID, err := scheduleService.CreateEvent(ctx, CreateEventInput{
		Name:    "Lifecycle",
		Format:  event.FormatSingles,
		Courts:  1,
		Players: rosterInputs(2),
	})
	require.NoError(t, err)

	generated, err := scheduleService.GenerateRounds(ctx, eventID, GenerateRoundsInput{Count: 1})
	require.NoError(t, err)
	roundID := generated.Rounds[0].ID

	_, err = scheduleService.AdvanceRound(ctx, roundID, event.RoundCompleted)
	assert.ErrorIs(t, err, ErrInvalidRoundTransition, "rounds cannot skip the in-progress state")

	round, err := scheduleService.AdvanceRound(ctx, roundID, event.RoundInProgress)
	require.NoError(t, err)
	assert.Equal(t, event.RoundInProgress, round.Status)

	round, err = scheduleService.AdvanceRound(ctx, roundID, event.RoundCompleted)
	require.NoError(t, err)
	assert.Equal(t, event.RoundCompleted, round.Status)

	_, err = scheduleService.AdvanceRound(ctx, roundID, event.RoundInProgress)
	assert.ErrorIs(t, err, ErrInvalidRoundTransition, "completed rounds never move again")
}
