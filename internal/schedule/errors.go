package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrTeamsNotConfigured is returned when the team-battle format is
	// invoked without exactly two named teams in the roster.
	ErrTeamsNotConfigured = errors.New("team battle requires exactly two named teams")

	ErrUnknownFormat = errors.New("unknown format")
)

// InsufficientPlayersError aborts generation when the roster is smaller than
// the format's minimum. Nothing is produced; the caller decides whether to
// prompt for more players or abandon the round.
type InsufficientPlayersError struct {
	Required int
	Actual   int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("insufficient players: format requires %d, have %d", e.Required, e.Actual)
}
