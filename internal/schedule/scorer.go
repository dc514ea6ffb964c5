package schedule

import "github.com/google/uuid"

// Pairing desirability weights, in strict priority order: a rematch of the
// same partnership is worse than a repeat opponent, which is worse than
// raw play-volume imbalance. Heuristic weights, not an optimality proof.
const (
	RepeatPartnerPenalty  = -500
	RepeatOpponentPenalty = -300
	PlayCountPenalty      = -10
)

// Score rates a candidate grouping of one or two players per side. Higher
// is more desirable; a fresh grouping of rested players scores 0.
func (h *History) Score(teamA, teamB []uuid.UUID) int {
	score := 0
	score += RepeatPartnerPenalty * h.repeatPartners(teamA)
	score += RepeatPartnerPenalty * h.repeatPartners(teamB)
	for _, a := range teamA {
		for _, b := range teamB {
			if h.HasOpposed(a, b) {
				score += RepeatOpponentPenalty
			}
		}
	}
	for _, id := range teamA {
		score += PlayCountPenalty * h.PlayCount(id)
	}
	for _, id := range teamB {
		score += PlayCountPenalty * h.PlayCount(id)
	}
	return score
}

func (h *History) repeatPartners(team []uuid.UUID) int {
	n := 0
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			if h.HasPartnered(team[i], team[j]) {
				n++
			}
		}
	}
	return n
}
