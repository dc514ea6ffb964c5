package standings

import (
	"errors"
	"fmt"

	"github.com/mhutchins/open-play-app/internal/event"
)

var (
	// ErrTiebreakerRequired rejects a tied fixed-games score submitted
	// without an explicit tiebreaker winner.
	ErrTiebreakerRequired = errors.New("tied score requires an explicit tiebreaker winner")

	// ErrTiedScoreNotAllowed rejects equal scores under formats that have
	// no tiebreaker mechanism.
	ErrTiedScoreNotAllowed = errors.New("tied scores are not allowed for this scoring format")
)

// InvalidScoreTotalError rejects a score whose totals do not satisfy the
// configured scoring format before it ever reaches aggregation.
type InvalidScoreTotalError struct {
	Expected int
	Actual   int
}

func (e *InvalidScoreTotalError) Error() string {
	return fmt.Sprintf("invalid score total: expected %d, got %d", e.Expected, e.Actual)
}

// Rule is an event's configured scoring format plus its numeric target.
type Rule struct {
	Format event.ScoringFormat
	Target int
}

// Validate checks a submitted score against the rule. Violations are
// reported, never coerced.
func (r Rule) Validate(score1, score2 int, tiebreakWinner *int) error {
	switch r.Format {
	case event.ScoringFixedGames:
		if total := score1 + score2; total != r.Target {
			return &InvalidScoreTotalError{Expected: r.Target, Actual: total}
		}
		if score1 == score2 && (tiebreakWinner == nil || (*tiebreakWinner != 1 && *tiebreakWinner != 2)) {
			return ErrTiebreakerRequired
		}
	case event.ScoringFirstTo:
		if score1 == score2 {
			return ErrTiedScoreNotAllowed
		}
		if high := max(score1, score2); high != r.Target {
			return &InvalidScoreTotalError{Expected: r.Target, Actual: high}
		}
	default:
		if score1 == score2 {
			return ErrTiedScoreNotAllowed
		}
	}
	return nil
}

// Resolve validates a submitted score and returns the decided result, with
// the winner drawn from the tiebreaker when the raw score is even.
func (r Rule) Resolve(score1, score2 int, tiebreakWinner *int) (Result, error) {
	if err := r.Validate(score1, score2, tiebreakWinner); err != nil {
		return Result{}, err
	}
	res := Result{Score1: score1, Score2: score2}
	switch {
	case score1 > score2:
		res.Winner = 1
	case score2 > score1:
		res.Winner = 2
	default:
		res.Winner = *tiebreakWinner
	}
	return res, nil
}
