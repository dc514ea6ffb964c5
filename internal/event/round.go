package event

import (
	"time"

	"github.com/google/uuid"
)

type RoundStatus string

const (
	RoundUpcoming   RoundStatus = "upcoming"
	RoundInProgress RoundStatus = "in_progress"
	RoundCompleted  RoundStatus = "completed"
)

// CanTransitionTo reports whether moving to the given status is a legal
// lifecycle step. Rounds only ever move forward, one state at a time.
func (s RoundStatus) CanTransitionTo(to RoundStatus) bool {
	switch s {
	case RoundUpcoming:
		return to == RoundInProgress
	case RoundInProgress:
		return to == RoundCompleted
	default:
		return false
	}
}

type Round struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	EventID   uuid.UUID   `db:"event_id" json:"event_id"`
	Number    int         `db:"number" json:"number"`
	Status    RoundStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
