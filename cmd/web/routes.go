package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mhutchins/open-play-app/internal/db"
	"github.com/mhutchins/open-play-app/internal/event"
	"github.com/mhutchins/open-play-app/internal/httputil"
	"github.com/mhutchins/open-play-app/internal/schedule"
	"github.com/mhutchins/open-play-app/internal/service"
	"github.com/mhutchins/open-play-app/internal/standings"
	"github.com/mhutchins/open-play-app/internal/store"
)

func newRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Post("/events", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		scheduleService := service.NewScheduleService(dbConn, store.NewEventStore(dbConn))

		var body struct {
			Name          string                `json:"name"`
			Format        event.FormatTag       `json:"format"`
			Courts        int                   `json:"courts"`
			Scoring       event.ScoringFormat   `json:"scoring"`
			ScoringTarget int                   `json:"scoring_target"`
			Players       []service.PlayerInput `json:"players"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		if body.Name == "" || body.Courts < 1 {
			httputil.BadRequest(w, "Event name and a positive court count are required", nil)
			return
		}

		id, err := scheduleService.CreateEvent(r.Context(), service.CreateEventInput{
			Name:          body.Name,
			Format:        body.Format,
			Courts:        body.Courts,
			Scoring:       body.Scoring,
			ScoringTarget: body.ScoringTarget,
			Players:       body.Players,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrUnknownFormat) {
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			httputil.InternalServerError(w, "Failed to create event", err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
	})

	r.Get("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		scheduleService := service.NewScheduleService(dbConn, store.NewEventStore(dbConn))

		data, err := scheduleService.GetEventData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Event not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get event", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, data)
	})

	r.Post("/events/{id}/rounds", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		scheduleService := service.NewScheduleService(dbConn, store.NewEventStore(dbConn))

		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid event ID", err)
			return
		}

		var body struct {
			Count         int `json:"count"`
			DoublesCourts int `json:"doubles_courts"`
			SinglesCourts int `json:"singles_courts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		generated, err := scheduleService.GenerateRounds(r.Context(), eventID, service.GenerateRoundsInput{
			Count:         body.Count,
			DoublesCourts: body.DoublesCourts,
			SinglesCourts: body.SinglesCourts,
		})
		if err != nil {
			writeGenerationError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, generated)
	})

	r.Get("/events/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		scoreService := service.NewScoreService(dbConn, store.NewEventStore(dbConn))

		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid event ID", err)
			return
		}

		ranked, err := scoreService.Standings(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Event not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to compute standings", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, standingsResponse(ranked))
	})

	r.Post("/rounds/{id}/advance", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		scheduleService := service.NewScheduleService(dbConn, store.NewEventStore(dbConn))

		roundID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid round ID", err)
			return
		}

		var body struct {
			Status event.RoundStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		round, err := scheduleService.AdvanceRound(r.Context(), roundID, body.Status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Round not found", err)
				return
			}
			if errors.Is(err, service.ErrInvalidRoundTransition) {
				httputil.UnprocessableEntity(w, err.Error(), err)
				return
			}
			httputil.InternalServerError(w, "Failed to advance round", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, round)
	})

	r.Post("/matches/{id}/score", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		scoreService := service.NewScoreService(dbConn, store.NewEventStore(dbConn))

		matchID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid match ID", err)
			return
		}

		var body struct {
			Score1         int  `json:"score_1"`
			Score2         int  `json:"score_2"`
			TiebreakWinner *int `json:"tiebreak_winner"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		match, err := scoreService.RecordScore(r.Context(), matchID, body.Score1, body.Score2, body.TiebreakWinner)
		if err != nil {
			writeScoringError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, match)
	})

	return r
}

func writeGenerationError(w http.ResponseWriter, err error) {
	var insufficient *schedule.InsufficientPlayersError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "Event not found", err)
	case errors.As(err, &insufficient),
		errors.Is(err, schedule.ErrTeamsNotConfigured):
		httputil.UnprocessableEntity(w, err.Error(), err)
	case errors.Is(err, schedule.ErrUnknownFormat):
		httputil.BadRequest(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, "Failed to generate rounds", err)
	}
}

func writeScoringError(w http.ResponseWriter, err error) {
	var invalidTotal *standings.InvalidScoreTotalError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "Match not found", err)
	case errors.As(err, &invalidTotal),
		errors.Is(err, standings.ErrTiebreakerRequired),
		errors.Is(err, standings.ErrTiedScoreNotAllowed),
		errors.Is(err, service.ErrByeNotScorable):
		httputil.UnprocessableEntity(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, "Failed to record score", err)
	}
}

type standingRow struct {
	Rank          string  `json:"rank"`
	Position      int     `json:"position"`
	EntityID      string  `json:"entity_id"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	GamesWon      int     `json:"games_won"`
	GamesLost     int     `json:"games_lost"`
	GamesDiff     int     `json:"games_diff"`
	WinPercentage float64 `json:"win_percentage"`
}

func standingsResponse(ranked []standings.Ranked) []standingRow {
	rows := make([]standingRow, len(ranked))
	for i, r := range ranked {
		rows[i] = standingRow{
			Rank:          r.DisplayRank,
			Position:      r.Position,
			EntityID:      r.EntityID,
			Name:          r.Name,
			Wins:          r.Wins,
			Losses:        r.Losses,
			GamesWon:      r.GamesWon,
			GamesLost:     r.GamesLost,
			GamesDiff:     r.GamesDiff(),
			WinPercentage: r.WinPercentage(),
		}
	}
	return rows
}
